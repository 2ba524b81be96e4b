package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/histclean/histclean/internal/config"
	"github.com/histclean/histclean/internal/output"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and create filter rules",
}

var rulesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective ignore and allow rules",
	Long: `Print the rules a cleaning run would use: the configured rules file
when one is set, the built-in defaults otherwise.

Examples:
  histclean rules show
  histclean rules show --rules rules.json --format json`,
	Args: cobra.NoArgs,
	RunE: runRulesShow,
}

var rulesInitCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Write a sample rules file",
	Long: `Create a sample rules file with the built-in defaults plus commented
examples, ready to edit.

Examples:
  histclean rules init rules.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesInit,
}

func init() {
	rulesCmd.AddCommand(rulesShowCmd)
	rulesCmd.AddCommand(rulesInitCmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesShow(cmd *cobra.Command, args []string) error {
	rc := config.DefaultRules()
	if path := viper.GetString("rules_file"); path != "" {
		loaded, err := config.LoadRulesFile(path)
		if err != nil {
			return err
		}
		rc = loaded
	}

	ignore, allow, ruleErrs, err := rc.Compile()
	for _, re := range ruleErrs {
		fmt.Fprintln(cmd.ErrOrStderr(), "Skipping rule:", re)
	}
	if err != nil {
		return err
	}

	format := output.ParseFormat(viper.GetString("format"))
	w := output.New(cmd.OutOrStdout(), format)

	if err := w.WriteRules("ignore_list", ignore); err != nil {
		return err
	}
	if format != output.FormatJSON {
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return w.WriteRules("allow_list", allow)
}

func runRulesInit(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := config.WriteSampleRules(path); err != nil {
		return fmt.Errorf("failed to write sample rules: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Sample rules written to:", path)
	fmt.Fprintln(cmd.OutOrStdout(), "Edit this file and pass it with --rules to customize filtering.")
	return nil
}
