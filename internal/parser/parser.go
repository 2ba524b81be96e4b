// Package parser reads zsh extended history files.
//
// It reassembles logical entries from the flat line stream (commands may
// span several physical lines) and parses each entry into its timestamp
// token and command text.
package parser

import (
	"bufio"
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
)

// entryStart matches the first line of an extended history entry:
// ": <seconds>:<elapsed>;<command>".
var entryStart = regexp.MustCompile(`^: (\d+:\d+);(.*)$`)

// ErrMalformed is returned by ParseBlob for a blob that does not match
// the history entry grammar.
var ErrMalformed = errors.New("malformed history entry")

// Entry is one logical history record. Command may contain embedded
// newlines when the original entry spanned multiple physical lines.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Command   string `json:"command"`
}

// Format reconstructs the entry in the history file wire format. It is
// the exact inverse of ParseBlob: the timestamp token and the raw
// command text are preserved verbatim.
func (e Entry) Format() string {
	return ": " + e.Timestamp + ";" + e.Command
}

// ScanStats reports what the blob scanner saw in one pass.
type ScanStats struct {
	TotalLines int // physical lines read
	Orphaned   int // continuation lines with no open entry
}

// IsEntryStart reports whether a physical line begins a new history
// entry. Any other line is a continuation of the entry before it.
func IsEntryStart(line string) bool {
	return strings.HasPrefix(line, ": ") &&
		strings.Contains(line, ":") &&
		strings.Contains(line, ";")
}

const maxScanTokenSize = 1024 * 1024 // 1MB, pasted blobs can produce very long lines

// ScanBlobs reads physical lines from r and emits one blob per logical
// entry, in input order. Continuation lines are joined to the current
// entry with a newline; a continuation with no open entry is counted as
// orphaned and dropped. The last open entry is flushed at EOF.
//
// The scan is single-pass and not restartable. fn returning an error
// stops the scan and propagates the error.
func ScanBlobs(r io.Reader, fn func(blob string) error) (ScanStats, error) {
	var stats ScanStats

	scanner := bufio.NewScanner(r)
	buf := make([]byte, maxScanTokenSize)
	scanner.Buffer(buf, maxScanTokenSize)

	var current strings.Builder
	open := false

	for scanner.Scan() {
		stats.TotalLines++
		line := scanner.Text()

		if IsEntryStart(line) {
			if open {
				if err := fn(current.String()); err != nil {
					return stats, err
				}
				current.Reset()
			}
			current.WriteString(line)
			open = true
			continue
		}

		if !open {
			stats.Orphaned++
			continue
		}
		current.WriteByte('\n')
		current.WriteString(line)
	}

	if err := scanner.Err(); err != nil {
		return stats, err
	}

	if open {
		if err := fn(current.String()); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// ScanFile opens path and scans it with ScanBlobs.
func ScanFile(path string, fn func(blob string) error) (ScanStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return ScanStats{}, err
	}
	defer f.Close()

	return ScanBlobs(f, fn)
}

// ParseBlob parses an entry blob into an Entry. The grammar is matched
// against the first line only; subsequent lines of the blob are
// appended to the command verbatim. Blobs not matching the grammar at
// all return ErrMalformed.
func ParseBlob(blob string) (Entry, error) {
	first := blob
	rest := ""
	if i := strings.IndexByte(blob, '\n'); i >= 0 {
		first = blob[:i]
		rest = blob[i:]
	}

	m := entryStart.FindStringSubmatch(first)
	if m == nil {
		return Entry{}, ErrMalformed
	}

	return Entry{
		Timestamp: m[1],
		Command:   m[2] + rest,
	}, nil
}
