package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/histclean/histclean/internal/backup"
	"github.com/histclean/histclean/internal/cleaner"
	"github.com/histclean/histclean/internal/output"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the history file in place",
	Long: `Remove duplicate, overly long, and garbage entries from the history
file. A timestamped backup is created first, and restored if writing
the cleaned history fails.

Examples:
  histclean clean
  histclean clean --dry-run
  histclean clean --rules rules.json --max-length 300
  histclean clean --yes --no-backup`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolP("dry-run", "n", false, "show what would be done without making changes")
	cleanCmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	cleanCmd.Flags().Bool("no-backup", false, "skip backup creation")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")
	noBackup, _ := cmd.Flags().GetBool("no-backup")

	historyFile := viper.GetString("history_file")
	if _, err := os.Stat(historyFile); err != nil {
		return fmt.Errorf("history file does not exist: %s", historyFile)
	}

	c, err := loadRules()
	if err != nil {
		return err
	}

	format := output.ParseFormat(viper.GetString("format"))
	out := cmd.OutOrStdout()

	if dryRun {
		fmt.Fprintln(out, "DRY RUN MODE - No changes will be made")

		result, err := c.RunFile(historyFile)
		if err != nil {
			return err
		}
		if err := output.New(out, format).WriteStats(result.Stats); err != nil {
			return err
		}
		fmt.Fprintln(out, "\nDRY RUN: No changes were made to the history file")
		return nil
	}

	if !yes && !confirm(cmd) {
		fmt.Fprintln(out, "Operation cancelled.")
		return nil
	}

	var backupPath string
	if !noBackup {
		backupPath, err = backup.Create(historyFile)
		if err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
		fmt.Fprintln(out, "Backup created:", backupPath)
	}

	result, err := c.RunFile(historyFile)
	if err != nil {
		return fmt.Errorf("failed to process history: %w", err)
	}

	if err := writeCleaned(historyFile, result); err != nil {
		if backupPath != "" {
			if rerr := backup.Restore(backupPath, historyFile); rerr != nil {
				return fmt.Errorf("write failed (%v) and restore failed: %w", err, rerr)
			}
			return fmt.Errorf("write failed, history restored from backup: %w", err)
		}
		return fmt.Errorf("failed to write cleaned history: %w", err)
	}

	if err := output.New(out, format).WriteStats(result.Stats); err != nil {
		return err
	}
	fmt.Fprintln(out, "\nHistory cleaned. Run 'fc -R' or restart your shell to reload it.")
	return nil
}

// confirm asks the user before touching the history file.
func confirm(cmd *cobra.Command) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "This will clean %s.\nDo you want to proceed? [y/N]: ",
		viper.GetString("history_file"))

	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// writeCleaned replaces the history file with the kept entries.
func writeCleaned(path string, result *cleaner.Result) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := result.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
