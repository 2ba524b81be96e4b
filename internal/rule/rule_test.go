package rule

import (
	"strings"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MatchMode
		wantErr bool
	}{
		{"exact", "exact", ModeExact, false},
		{"contains", "contains", ModeContains, false},
		{"starts_with", "starts_with", ModeStartsWith, false},
		{"ends_with", "ends_with", ModeEndsWith, false},
		{"regex", "regex", ModeRegex, false},
		{"uppercase", "EXACT", ModeExact, false},
		{"mixed case", "Starts_With", ModeStartsWith, false},
		{"surrounding space", " contains ", ModeContains, false},
		{"unknown", "glob", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRule_Matches(t *testing.T) {
	tests := []struct {
		name          string
		pattern       string
		mode          MatchMode
		caseSensitive bool
		text          string
		want          bool
	}{
		{"exact match", "ls -la", ModeExact, false, "ls -la", true},
		{"exact no match", "ls -la", ModeExact, false, "ls -l", false},
		{"exact folds case", "Make Build", ModeExact, false, "make build", true},
		{"exact case sensitive", "Make Build", ModeExact, true, "make build", false},

		{"contains match", "docker", ModeContains, false, "sudo docker ps", true},
		{"contains no match", "docker", ModeContains, false, "podman ps", false},
		{"contains folds case", "DOCKER", ModeContains, false, "sudo docker ps", true},
		{"contains case sensitive miss", "DOCKER", ModeContains, true, "sudo docker ps", false},

		{"starts_with match", "git commit", ModeStartsWith, false, "git commit -m x", true},
		{"starts_with no match", "git commit", ModeStartsWith, false, "sudo git commit", false},
		{"ends_with match", "| less", ModeEndsWith, false, "cat foo | less", true},
		{"ends_with no match", "| less", ModeEndsWith, false, "less foo", false},

		{"regex search match", "checking.*keyring.*100%", ModeRegex, false, "x checking the keyring at 100% done", true},
		{"regex is a search not full match", "foo", ModeRegex, false, "barfoobaz", true},
		{"regex insensitive flag", "ERROR", ModeRegex, false, "error: it broke", true},
		{"regex case sensitive", "ERROR", ModeRegex, true, "error: it broke", false},
		{"regex anchored", "^clear$", ModeRegex, false, "clear the decks", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.pattern, tt.mode, tt.caseSensitive, "")
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := r.Matches(tt.text); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNew_InvalidRegex(t *testing.T) {
	_, err := New("[unclosed", ModeRegex, false, "")
	if err == nil {
		t.Fatal("New() with invalid regex expected error, got nil")
	}
	if !strings.Contains(err.Error(), "[unclosed") {
		t.Errorf("error should identify the offending pattern, got: %v", err)
	}
}

func TestNew_UnknownMode(t *testing.T) {
	if _, err := New("x", MatchMode(42), false, ""); err == nil {
		t.Fatal("New() with unknown mode expected error, got nil")
	}
}

func TestList_MatchFirstWins(t *testing.T) {
	first, err := New("git", ModeStartsWith, false, "first")
	if err != nil {
		t.Fatal(err)
	}
	second, err := New("git commit", ModeStartsWith, false, "second")
	if err != nil {
		t.Fatal(err)
	}
	list := List{first, second}

	got := list.Match("git commit -m x")
	if got == nil {
		t.Fatal("Match() = nil, want first rule")
	}
	if got.Description() != "first" {
		t.Errorf("Match() picked %q, want the first rule in load order", got.Description())
	}

	if list.Match("make build") != nil {
		t.Error("Match() on non-matching text should return nil")
	}
}

func TestList_EmptyMatchesNothing(t *testing.T) {
	var l List
	if l.Match("anything") != nil {
		t.Error("empty list should match nothing")
	}
}
