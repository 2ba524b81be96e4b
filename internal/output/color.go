package output

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/histclean/histclean/internal/cleaner"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// ColorMode determines when to use colored output.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // Auto-detect based on TTY
	ColorAlways                  // Always use colors
	ColorNever                   // Never use colors
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// shouldColorize determines if output should be colorized based on mode and TTY detection.
func shouldColorize(mode ColorMode, w interface{}) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	case ColorAuto:
		if f, ok := w.(*os.File); ok {
			return isTerminal(f)
		}
		return false
	}
	return false
}

// colorizeReason wraps text in a color reflecting the decision outcome:
// green for keeps, red for rule removals, yellow for length, gray for
// noise and duplicates.
func colorizeReason(reason cleaner.Reason, text string) string {
	switch reason {
	case cleaner.ReasonKept, cleaner.ReasonIgnoreRule:
		return colorGreen + text + colorReset
	case cleaner.ReasonAllowRule:
		return colorRed + text + colorReset
	case cleaner.ReasonTooLong:
		return colorYellow + text + colorReset
	case cleaner.ReasonDuplicate, cleaner.ReasonRepetitive, cleaner.ReasonEmpty, cleaner.ReasonMalformed:
		return colorGray + text + colorReset
	default:
		return text
	}
}

// FormatDecision renders one decision as "KEEP/DROP <reason>  <command>"
// with optional coloring.
func FormatDecision(d cleaner.Decision, colorize bool) string {
	verdict := "DROP"
	if d.Keep {
		verdict = "KEEP"
	}

	line := fmt.Sprintf("%s %-18s %s", verdict, d.Reason, d.Entry.Command)
	if colorize {
		return colorizeReason(d.Reason, line)
	}
	return line
}

// WriteDecision writes a decision line to the writer with color based
// on ColorMode.
func (wr *Writer) WriteDecision(d cleaner.Decision, mode ColorMode) error {
	colorize := shouldColorize(mode, wr.w)
	_, err := fmt.Fprintln(wr.w, FormatDecision(d, colorize))
	return err
}
