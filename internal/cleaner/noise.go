package cleaner

import (
	"regexp"
)

// Noise signatures for captured terminal output that ended up in the
// history file: separator runs, progress bars, excessive whitespace.
var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`-{20,}`),     // separator dashes
	regexp.MustCompile(`={20,}`),     // separator equals
	regexp.MustCompile(`\[.*\]{3,}`), // bracketed progress-bar runs
	regexp.MustCompile(`\s{10,}`),    // column padding
}

// repeatRunLimit is the shortest run of one repeated character that
// marks a command as noise. RE2 has no backreferences, so the run
// check is done by hand rather than with (.)\1{n,}.
const repeatRunLimit = 16

// IsNoise reports whether a command looks like captured terminal
// output rather than something a user typed.
func IsNoise(command string) bool {
	for _, p := range noisePatterns {
		if p.MatchString(command) {
			return true
		}
	}
	return longestRun(command) >= repeatRunLimit
}

// longestRun returns the length of the longest run of one repeated
// rune in s.
func longestRun(s string) int {
	var prev rune
	run, longest := 0, 0

	for i, r := range s {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
			prev = r
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
