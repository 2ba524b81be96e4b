package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/histclean/histclean/internal/cleaner"
	"github.com/histclean/histclean/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "histclean",
	Short: "Clean your zsh history",
	Long: `Histclean removes duplicate, overly long, and garbage entries from
your zsh history file, guided by configurable keep/remove rules.

Examples:
  histclean clean
  histclean clean --dry-run --verbose
  histclean stats ~/.zsh_history
  histclean rules init rules.json
  histclean tail`,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.histclean.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "history file (default is $HOME/.zsh_history)")
	rootCmd.PersistentFlags().StringP("rules", "r", "", "rules file with ignore/allow lists")
	rootCmd.PersistentFlags().IntP("max-length", "l", cleaner.DefaultMaxLength, "maximum command length to keep")
	rootCmd.PersistentFlags().String("format", "text", "output format (text, json, table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("history_file", rootCmd.PersistentFlags().Lookup("file"))
	_ = viper.BindPFlag("rules_file", rootCmd.PersistentFlags().Lookup("rules"))
	_ = viper.BindPFlag("max_length", rootCmd.PersistentFlags().Lookup("max-length"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigName(".histclean")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("HISTCLEAN")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("history_file", config.DefaultHistoryFile())
	viper.SetDefault("max_length", cleaner.DefaultMaxLength)
	viper.SetDefault("format", "text")
	viper.SetDefault("verbose", false)
	viper.SetDefault("backup", true)

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// loadRules resolves the effective rule set: the rules file when one is
// configured, the built-in defaults otherwise. Individually bad rules
// are reported to stderr and skipped.
func loadRules() (*cleaner.Cleaner, error) {
	rc := config.DefaultRules()
	if path := viper.GetString("rules_file"); path != "" {
		loaded, err := config.LoadRulesFile(path)
		if err != nil {
			return nil, err
		}
		rc = loaded
	}

	ignore, allow, ruleErrs, err := rc.Compile()
	for _, re := range ruleErrs {
		fmt.Fprintln(os.Stderr, "Skipping rule:", re)
	}
	if err != nil {
		return nil, err
	}

	opts := []cleaner.Option{
		cleaner.WithMaxLength(viper.GetInt("max_length")),
		cleaner.WithIgnoreRules(ignore),
		cleaner.WithAllowRules(allow),
	}

	if viper.GetBool("verbose") {
		opts = append(opts, cleaner.WithTrace(func(d cleaner.Decision) {
			if !d.Keep {
				fmt.Fprintf(os.Stderr, "Removed (%s): %s\n", d.Reason, firstLine(d.Entry.Command, 50))
			}
		}))
	}

	return cleaner.New(opts...), nil
}

// firstLine truncates a command for one-line diagnostics.
func firstLine(s string, max int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
