package cleaner

import (
	"regexp"
	"strings"
)

var (
	continuationSeq   = regexp.MustCompile(`\\\s*\n\s*`)
	whitespaceRun     = regexp.MustCompile(`\s+`)
	trailingBackslash = regexp.MustCompile(`\\\s*$`)
)

// Normalize derives the duplicate-detection key for a command: line
// continuations become a single space, whitespace runs collapse to one
// space, surrounding whitespace and a trailing lone backslash are
// stripped. The normalized form is only ever compared, never written
// back to the history file.
func Normalize(command string) string {
	n := continuationSeq.ReplaceAllString(command, " ")
	n = whitespaceRun.ReplaceAllString(strings.TrimSpace(n), " ")
	n = trailingBackslash.ReplaceAllString(n, "")
	return strings.TrimSpace(n)
}
