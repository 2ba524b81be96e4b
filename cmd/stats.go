package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/histclean/histclean/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Show what a cleaning run would remove",
	Long: `Run the cleaning pipeline read-only and print the statistics:
how many entries would be removed as duplicates, noise, rule matches,
and so on. The history file is never modified.

Examples:
  histclean stats
  histclean stats --format json ~/.zsh_history
  histclean stats --rules rules.json --max-length 300`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	historyFile := viper.GetString("history_file")
	if len(args) == 1 {
		historyFile = args[0]
	}
	if _, err := os.Stat(historyFile); err != nil {
		return fmt.Errorf("history file does not exist: %s", historyFile)
	}

	c, err := loadRules()
	if err != nil {
		return err
	}

	result, err := c.RunFile(historyFile)
	if err != nil {
		return err
	}

	format := output.ParseFormat(viper.GetString("format"))
	return output.New(cmd.OutOrStdout(), format).WriteStats(result.Stats)
}
