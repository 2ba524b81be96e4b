// Package output renders cleaning results, rules, and statistics.
// It supports text, JSON, and table formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/histclean/histclean/internal/cleaner"
	"github.com/histclean/histclean/internal/parser"
	"github.com/histclean/histclean/internal/rule"
)

// Format represents an output format type.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// ParseFormat converts a string to a Format, defaulting to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Writer handles writing formatted output.
type Writer struct {
	w      io.Writer
	format Format
}

// New creates a new output Writer.
func New(w io.Writer, format Format) *Writer {
	return &Writer{w: w, format: format}
}

// WriteJSON outputs any value as indented JSON.
func (wr *Writer) WriteJSON(v interface{}) error {
	enc := json.NewEncoder(wr.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteEntries outputs kept history entries in the configured format.
// Text output uses the history wire format.
func (wr *Writer) WriteEntries(entries []parser.Entry) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(entries)
	case FormatTable:
		return wr.writeEntryTable(entries)
	default:
		for _, e := range entries {
			fmt.Fprintln(wr.w, e.Format())
		}
		return nil
	}
}

func (wr *Writer) writeEntryTable(entries []parser.Entry) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tCOMMAND")
	fmt.Fprintln(tw, "---------\t-------")

	for _, e := range entries {
		cmd := strings.ReplaceAll(e.Command, "\n", "\\n")
		if len(cmd) > 80 {
			cmd = cmd[:77] + "..."
		}
		fmt.Fprintf(tw, "%s\t%s\n", e.Timestamp, cmd)
	}

	return tw.Flush()
}

// WriteStats outputs the cleaning statistics in the configured format.
func (wr *Writer) WriteStats(stats cleaner.Stats) error {
	switch wr.format {
	case FormatJSON:
		return wr.WriteJSON(stats)
	case FormatTable:
		return wr.writeStatsTable(stats)
	default:
		_, err := fmt.Fprintln(wr.w, stats.String())
		return err
	}
}

func (wr *Writer) writeStatsTable(stats cleaner.Stats) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COUNTER\tVALUE")
	fmt.Fprintln(tw, "-------\t-----")

	rows := []struct {
		name  string
		value int
	}{
		{"total_lines", stats.TotalLines},
		{"valid_entries", stats.ValidEntries},
		{"ignored_kept", stats.IgnoredKept},
		{"allowed_removed", stats.AllowedRemoved},
		{"duplicates_removed", stats.DuplicatesRemoved},
		{"too_long_removed", stats.TooLongRemoved},
		{"pattern_removed", stats.PatternRemoved},
		{"malformed_removed", stats.MalformedRemoved},
		{"final_entries", stats.FinalEntries},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\n", row.name, row.value)
	}
	fmt.Fprintf(tw, "reduction\t%.1f%%\n", stats.ReductionPercent())

	return tw.Flush()
}

// WriteRules outputs a rule list in the configured format. JSON output
// uses the rules-file field names.
func (wr *Writer) WriteRules(name string, rules rule.List) error {
	switch wr.format {
	case FormatJSON:
		type ruleJSON struct {
			Pattern       string `json:"pattern"`
			MatchType     string `json:"match_type"`
			CaseSensitive bool   `json:"case_sensitive"`
			Description   string `json:"description,omitempty"`
		}
		out := make([]ruleJSON, 0, len(rules))
		for _, r := range rules {
			out = append(out, ruleJSON{
				Pattern:       r.Pattern(),
				MatchType:     r.Mode().String(),
				CaseSensitive: r.CaseSensitive(),
				Description:   r.Description(),
			})
		}
		return wr.WriteJSON(map[string]interface{}{name: out})
	default:
		tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "%s:\n", strings.ToUpper(name))
		fmt.Fprintln(tw, "PATTERN\tMATCH\tCASE\tDESCRIPTION")
		fmt.Fprintln(tw, "-------\t-----\t----\t-----------")
		for _, r := range rules {
			caseCol := "no"
			if r.CaseSensitive() {
				caseCol = "yes"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Pattern(), r.Mode(), caseCol, r.Description())
		}
		return tw.Flush()
	}
}
