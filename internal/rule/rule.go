// Package rule implements the pattern rules used to decide whether a
// history entry is kept or removed.
//
// A rule pairs a pattern with a match mode (exact, contains, starts_with,
// ends_with, regex). Rules are compiled once at load time and are
// immutable afterwards.
package rule

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchMode selects how a rule's pattern is compared against a command.
type MatchMode int

const (
	ModeExact MatchMode = iota
	ModeContains
	ModeStartsWith
	ModeEndsWith
	ModeRegex
)

// String returns the configuration name of a MatchMode.
func (m MatchMode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeContains:
		return "contains"
	case ModeStartsWith:
		return "starts_with"
	case ModeEndsWith:
		return "ends_with"
	case ModeRegex:
		return "regex"
	default:
		return "unknown"
	}
}

// ParseMode converts a configuration string to a MatchMode.
// Names are case-insensitive. Unknown names are an error: an invalid
// mode must fail rule construction, not surface at match time.
func ParseMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact":
		return ModeExact, nil
	case "contains":
		return ModeContains, nil
	case "starts_with":
		return ModeStartsWith, nil
	case "ends_with":
		return ModeEndsWith, nil
	case "regex":
		return ModeRegex, nil
	default:
		return 0, fmt.Errorf("unknown match type: %q", s)
	}
}

// Rule is a single compiled filter rule.
type Rule struct {
	pattern       string
	mode          MatchMode
	caseSensitive bool
	description   string

	// foldedPattern is the lowercased pattern for the non-regex modes
	// when matching case-insensitively.
	foldedPattern string
	re            *regexp.Regexp
}

// New compiles a rule. Regex patterns are compiled here so an invalid
// pattern fails at load time; when the rule is case-insensitive the
// pattern is compiled with the (?i) flag.
func New(pattern string, mode MatchMode, caseSensitive bool, description string) (*Rule, error) {
	r := &Rule{
		pattern:       pattern,
		mode:          mode,
		caseSensitive: caseSensitive,
		description:   description,
		foldedPattern: pattern,
	}

	if !caseSensitive {
		r.foldedPattern = strings.ToLower(pattern)
	}

	switch mode {
	case ModeExact, ModeContains, ModeStartsWith, ModeEndsWith:
		// Nothing to compile.
	case ModeRegex:
		expr := pattern
		if !caseSensitive {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		r.re = re
	default:
		return nil, fmt.Errorf("unknown match type: %v", mode)
	}

	return r, nil
}

// Matches reports whether text matches the rule. For the string modes
// both sides are case-folded unless the rule is case-sensitive; the
// regex mode always searches the original-case text, with the
// case-insensitivity baked into the compiled pattern.
func (r *Rule) Matches(text string) bool {
	if r.mode == ModeRegex {
		return r.re.MatchString(text)
	}

	pattern := r.foldedPattern
	if !r.caseSensitive {
		text = strings.ToLower(text)
	}

	switch r.mode {
	case ModeExact:
		return text == pattern
	case ModeContains:
		return strings.Contains(text, pattern)
	case ModeStartsWith:
		return strings.HasPrefix(text, pattern)
	case ModeEndsWith:
		return strings.HasSuffix(text, pattern)
	}
	return false
}

// Pattern returns the rule's original pattern text.
func (r *Rule) Pattern() string { return r.pattern }

// Mode returns the rule's match mode.
func (r *Rule) Mode() MatchMode { return r.mode }

// CaseSensitive reports whether the rule matches case-sensitively.
func (r *Rule) CaseSensitive() bool { return r.caseSensitive }

// Description returns the rule's optional human description.
func (r *Rule) Description() string { return r.description }

// List is an ordered list of rules evaluated first-match-wins,
// in the order they were loaded from configuration.
type List []*Rule

// Match returns the first rule in the list matching text, or nil.
func (l List) Match(text string) *Rule {
	for _, r := range l {
		if r.Matches(text) {
			return r
		}
	}
	return nil
}
