package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/histclean/histclean/internal/cleaner"
	"github.com/histclean/histclean/internal/output"
	"github.com/histclean/histclean/internal/tail"
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Live-preview cleaning decisions for new history entries",
	Long: `Watch the history file in real-time and annotate each new entry with
the decision a cleaning run would make: kept, or dropped with the
reason (duplicate, rule match, too long, noise).

The duplicate check is seeded from the existing file content, so a
command you have already run shows up as a duplicate immediately.

Examples:
  histclean tail
  histclean tail --entries 20
  histclean tail --no-follow
  histclean tail --rules rules.json --no-color`,
	Args: cobra.NoArgs,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().IntP("entries", "e", 10, "number of initial entries to show")
	tailCmd.Flags().Bool("no-follow", false, "print last N decisions and exit (don't follow)")
	tailCmd.Flags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	entries, _ := cmd.Flags().GetInt("entries")
	noFollow, _ := cmd.Flags().GetBool("no-follow")
	noColor, _ := cmd.Flags().GetBool("no-color")

	historyFile := viper.GetString("history_file")
	if _, err := os.Stat(historyFile); err != nil {
		return fmt.Errorf("history file does not exist: %s", historyFile)
	}

	c, err := loadRules()
	if err != nil {
		return err
	}

	colorMode := output.ColorAuto
	if noColor {
		colorMode = output.ColorNever
	}
	writer := output.New(cmd.OutOrStdout(), output.FormatText)

	tailer := tail.New(c, tail.Options{
		FilePath: historyFile,
		Entries:  entries,
		Follow:   !noFollow,
		OutputFunc: func(d cleaner.Decision) error {
			return writer.WriteDecision(d, colorMode)
		},
	})

	// Stop cleanly on Ctrl-C.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tailer.Run(ctx)
}
