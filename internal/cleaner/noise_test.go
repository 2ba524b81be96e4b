package cleaner

import (
	"strings"
	"testing"
)

func TestIsNoise(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    bool
	}{
		{"plain command", "echo hi", false},
		{"20 dashes", strings.Repeat("-", 20), true},
		{"19 dashes", strings.Repeat("-", 19), true}, // still a 16+ run of one char
		{"15 dashes", strings.Repeat("-", 15), false},
		{"dashes inside text", "before " + strings.Repeat("-", 25) + " after", true},
		{"20 equals", strings.Repeat("=", 20), true},
		{"progress bar brackets", "[####" + strings.Repeat("]", 3), true},
		{"two closing brackets only", "[ok]]", false},
		{"10 spaces run", "ls" + strings.Repeat(" ", 10) + "-la", true},
		{"9 spaces run", "ls" + strings.Repeat(" ", 9) + "-la", false},
		{"16 repeated chars", strings.Repeat("x", 16), true},
		{"15 repeated chars", strings.Repeat("x", 15), false},
		{"16 repeated runes", strings.Repeat("λ", 16), true},
		{"long but varied command", strings.Repeat("ab", 30), false},
		{"whitespace run across newline", "echo hi" + strings.Repeat(" ", 5) + "\n" + strings.Repeat(" ", 5) + "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNoise(tt.command); got != tt.want {
				t.Errorf("IsNoise(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}

func TestLongestRun(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"single char", "a", 1},
		{"no repeats", "abcdef", 1},
		{"run at start", "aaab", 3},
		{"run at end", "baaa", 3},
		{"run in middle", "xaaaay", 4},
		{"multibyte runes", "ααα", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := longestRun(tt.input); got != tt.want {
				t.Errorf("longestRun(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
