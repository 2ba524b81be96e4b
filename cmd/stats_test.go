package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/histclean/histclean/internal/cleaner"
)

func TestRunStats_Text(t *testing.T) {
	path := writeHistoryFile(t, sampleHistory)

	var out bytes.Buffer
	statsCmd.SetOut(&out)

	if err := runStats(statsCmd, nil); err != nil {
		t.Fatalf("runStats() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Total lines processed:     5") {
		t.Errorf("output missing line count:\n%s", got)
	}
	if !strings.Contains(got, "Duplicates removed:        1") {
		t.Errorf("output missing duplicate count:\n%s", got)
	}

	// Stats is read-only.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != sampleHistory {
		t.Error("stats command modified the history file")
	}
}

func TestRunStats_JSON(t *testing.T) {
	writeHistoryFile(t, sampleHistory)
	viper.Set("format", "json")

	var out bytes.Buffer
	statsCmd.SetOut(&out)

	if err := runStats(statsCmd, nil); err != nil {
		t.Fatalf("runStats() error = %v", err)
	}

	var stats cleaner.Stats
	if err := json.Unmarshal(out.Bytes(), &stats); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}

	want := cleaner.Stats{
		TotalLines:        5,
		ValidEntries:      5,
		DuplicatesRemoved: 1,
		IgnoredKept:       1,
		PatternRemoved:    1,
		FinalEntries:      3,
	}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestRunStats_FileArgument(t *testing.T) {
	writeHistoryFile(t, sampleHistory)

	other := filepath.Join(t.TempDir(), "other_history")
	if err := os.WriteFile(other, []byte(": 1:0;only entry\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	statsCmd.SetOut(&out)

	if err := runStats(statsCmd, []string{other}); err != nil {
		t.Fatalf("runStats() error = %v", err)
	}
	if !strings.Contains(out.String(), "Total lines processed:     1") {
		t.Errorf("argument file not used:\n%s", out.String())
	}
}

func TestRunStats_MissingFile(t *testing.T) {
	writeHistoryFile(t, sampleHistory)

	if err := runStats(statsCmd, []string{filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatal("runStats() with missing file expected error, got nil")
	}
}
