// Package cleaner decides, entry by entry, what survives a history
// cleaning run.
//
// The decision layers, highest precedence first:
//  1. empty commands are dropped
//  2. allow rules (force-remove) drop the entry
//  3. ignore rules (force-keep) keep the entry unconditionally
//  4. commands over the length limit are dropped
//  5. commands matching a noise pattern are dropped
//  6. duplicates of an already-kept command are dropped
//
// Usage:
//
//	c := cleaner.New(
//	    cleaner.WithMaxLength(500),
//	    cleaner.WithIgnoreRules(ignore),
//	    cleaner.WithAllowRules(allow),
//	)
//
//	result, err := c.Run(file)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Stats.String())
package cleaner

import (
	"io"
	"os"
	"strings"

	"github.com/histclean/histclean/internal/parser"
	"github.com/histclean/histclean/internal/rule"
)

// Reason tags the outcome of a single entry decision.
type Reason string

const (
	ReasonEmpty      Reason = "empty"
	ReasonAllowRule  Reason = "allow_rule_match"
	ReasonIgnoreRule Reason = "ignore_rule_match"
	ReasonTooLong    Reason = "too_long"
	ReasonRepetitive Reason = "repetitive_pattern"
	ReasonDuplicate  Reason = "duplicate"
	ReasonKept       Reason = "kept"
	ReasonMalformed  Reason = "malformed"
)

// DefaultMaxLength is the command length limit used when none is configured.
const DefaultMaxLength = 500

// Decision records the outcome for one entry. It is passed to the
// trace hook, which verbose output and the tail command hang off.
type Decision struct {
	Entry  parser.Entry
	Keep   bool
	Reason Reason
}

// Cleaner holds the configured rule sets and limits. A Cleaner is
// reusable: each Run owns its own dedup state and statistics.
type Cleaner struct {
	ignore    rule.List
	allow     rule.List
	maxLength int
	trace     func(Decision)
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithMaxLength sets the maximum command length to keep.
// Default is DefaultMaxLength.
func WithMaxLength(n int) Option {
	return func(c *Cleaner) {
		c.maxLength = n
	}
}

// WithIgnoreRules sets the force-keep rules. A matching entry is kept
// regardless of length, noise, and duplicate checks.
func WithIgnoreRules(l rule.List) Option {
	return func(c *Cleaner) {
		c.ignore = l
	}
}

// WithAllowRules sets the force-remove rules. These have the highest
// precedence of all rules: a match removes the entry even when an
// ignore rule also matches.
func WithAllowRules(l rule.List) Option {
	return func(c *Cleaner) {
		c.allow = l
	}
}

// WithTrace sets a hook invoked with every entry decision, in input
// order. Malformed entries are reported with a zero-command Entry.
func WithTrace(fn func(Decision)) Option {
	return func(c *Cleaner) {
		c.trace = fn
	}
}

// New creates a Cleaner with the specified options.
func New(opts ...Option) *Cleaner {
	c := &Cleaner{maxLength: DefaultMaxLength}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tracker is the set of normalized commands already kept in one run.
type Tracker struct {
	seen map[string]struct{}
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]struct{})}
}

// Seen reports whether a normalized command was already kept.
func (t *Tracker) Seen(normalized string) bool {
	_, ok := t.seen[normalized]
	return ok
}

// Add records a normalized command as kept.
func (t *Tracker) Add(normalized string) {
	t.seen[normalized] = struct{}{}
}

// Len returns the number of distinct normalized commands recorded.
func (t *Tracker) Len() int { return len(t.seen) }

// Evaluate decides keep-or-drop for a single command. It only reads
// the tracker; recording a kept command is the caller's job, so the
// ignore-rule bypass still feeds the dedup set (a later plain
// duplicate of an ignore-matched command is detected as a duplicate).
func (c *Cleaner) Evaluate(command string, t *Tracker) (bool, Reason) {
	trimmed := strings.TrimSpace(command)

	if trimmed == "" {
		return false, ReasonEmpty
	}

	if c.allow.Match(trimmed) != nil {
		return false, ReasonAllowRule
	}

	if c.ignore.Match(trimmed) != nil {
		return true, ReasonIgnoreRule
	}

	if len(trimmed) > c.maxLength {
		return false, ReasonTooLong
	}

	if IsNoise(trimmed) {
		return false, ReasonRepetitive
	}

	if t.Seen(Normalize(command)) {
		return false, ReasonDuplicate
	}

	return true, ReasonKept
}

// Result is the outcome of one cleaning run: the kept entries in input
// order plus the statistics for the whole pass.
type Result struct {
	Entries []parser.Entry `json:"entries"`
	Stats   Stats          `json:"stats"`
}

// WriteTo writes the kept entries in the history wire format, one
// formatted entry per line with a trailing newline. It implements
// io.WriterTo.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range r.Entries {
		n, err := io.WriteString(w, e.Format()+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Run drives one full cleaning pass over r: scan blobs, parse, decide,
// accumulate. No entry is revisited once decided; kept entries stay in
// input order. The returned statistics are a value owned by the caller.
func (c *Cleaner) Run(r io.Reader) (*Result, error) {
	res := &Result{}
	tracker := NewTracker()

	scan, err := parser.ScanBlobs(r, func(blob string) error {
		entry, perr := parser.ParseBlob(blob)
		if perr != nil {
			res.Stats.MalformedRemoved++
			c.emit(Decision{Keep: false, Reason: ReasonMalformed})
			return nil
		}

		res.Stats.ValidEntries++
		keep, reason := c.Evaluate(entry.Command, tracker)
		res.Stats.count(reason)

		if keep {
			tracker.Add(Normalize(entry.Command))
			res.Entries = append(res.Entries, entry)
		}
		c.emit(Decision{Entry: entry, Keep: keep, Reason: reason})
		return nil
	})
	if err != nil {
		return nil, err
	}

	res.Stats.TotalLines = scan.TotalLines
	res.Stats.MalformedRemoved += scan.Orphaned
	res.Stats.FinalEntries = len(res.Entries)
	return res, nil
}

// RunFile opens path and runs the cleaning pass over it.
func (c *Cleaner) RunFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return c.Run(f)
}

func (c *Cleaner) emit(d Decision) {
	if c.trace != nil {
		c.trace(d)
	}
}
