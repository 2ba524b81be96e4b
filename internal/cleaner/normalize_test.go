package cleaner

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already normal", "echo hi", "echo hi"},
		{"surrounding whitespace", "  echo hi  ", "echo hi"},
		{"inner runs collapse", "echo    hi\t\tthere", "echo hi there"},
		{"backslash continuation", "echo \\\n  hi", "echo hi"},
		{"continuation with trailing space", "echo \\  \n  hi", "echo hi"},
		{"plain newline collapses", "echo hi\nthere", "echo hi there"},
		{"trailing lone backslash", "echo hi \\", "echo hi"},
		{"trailing backslash with spaces", "echo hi \\   ", "echo hi"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"backslash mid-word survives", `grep foo\bar baz`, `grep foo\bar baz`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Stable(t *testing.T) {
	inputs := []string{
		"echo hi",
		"  echo \\\n  hi  ",
		"cmd \\",
		"a\nb\nc",
	}

	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not stable for %q: %q != %q", in, twice, once)
		}
	}
}
