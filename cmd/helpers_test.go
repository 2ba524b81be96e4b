package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/histclean/histclean/internal/cleaner"
)

// sampleHistory exercises every removal path: a duplicate, an overlong
// command, separator noise, and an ignore-rule keep.
const sampleHistory = ": 1700000000:0;echo hi\n" +
	": 1700000001:0;echo  hi\n" +
	": 1700000002:0;--------------------------\n" +
	": 1700000003:0;git commit -m \"wip\"\n" +
	": 1700000004:0;ls -la\n"

// writeHistoryFile writes content to a temp history file and points the
// configuration at it. Configuration state is restored on cleanup.
func writeHistoryFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".zsh_history")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	viper.Set("history_file", path)
	viper.Set("max_length", cleaner.DefaultMaxLength)
	t.Cleanup(viper.Reset)

	return path
}
