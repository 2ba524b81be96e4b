// Package tail follows a live history file and previews cleaning
// decisions.
//
// It implements "tail -f" like functionality over logical history
// entries: as the shell appends entries, each one is annotated with the
// decision the cleaner would make (keep or drop, and why). The dedup
// set is seeded from the existing file content so duplicate detection
// matches what a real cleaning run would do.
package tail

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/histclean/histclean/internal/cleaner"
	"github.com/histclean/histclean/internal/parser"
)

// Options configures the tailer behavior.
type Options struct {
	FilePath   string                       // Path to the history file
	Entries    int                          // Number of initial entries to show
	Follow     bool                         // Whether to follow the file for new content
	OutputFunc func(cleaner.Decision) error // Called for each decided entry
}

// Tailer follows a history file and emits cleaning decisions.
type Tailer struct {
	opts    Options
	cleaner *cleaner.Cleaner
	tracker *cleaner.Tracker
	file    *os.File
	offset  int64
	watcher *fsnotify.Watcher

	// pending accumulates a multi-line entry across reads.
	pending strings.Builder
	open    bool
}

// New creates a new Tailer that previews decisions of c.
func New(c *cleaner.Cleaner, opts Options) *Tailer {
	return &Tailer{
		opts:    opts,
		cleaner: c,
		tracker: cleaner.NewTracker(),
	}
}

// Run starts the tailing process. It blocks until the context is
// cancelled or an error occurs.
func (t *Tailer) Run(ctx context.Context) error {
	f, err := os.Open(t.opts.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	t.file = f
	defer t.close()

	// Seed the dedup set from existing content and show the tail end.
	if err := t.seed(t.opts.Entries); err != nil {
		return fmt.Errorf("failed to read existing history: %w", err)
	}

	if !t.opts.Follow {
		return nil
	}

	if err := t.setupWatcher(); err != nil {
		return fmt.Errorf("failed to setup watcher: %w", err)
	}
	defer t.watcher.Close()

	return t.watch(ctx)
}

// seed scans the whole file from the start, recording kept commands in
// the tracker, and outputs the last show decisions.
func (t *Tailer) seed(show int) error {
	if _, err := t.file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	var recent []cleaner.Decision
	_, err := parser.ScanBlobs(t.file, func(blob string) error {
		d, ok := t.decide(blob)
		if !ok {
			return nil
		}
		recent = append(recent, d)
		if len(recent) > show && show >= 0 {
			recent = recent[1:]
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, d := range recent {
		if err := t.opts.OutputFunc(d); err != nil {
			return err
		}
	}

	t.offset, err = t.file.Seek(0, io.SeekEnd)
	return err
}

// decide parses one blob and evaluates it, updating the dedup set on
// keeps. Malformed blobs report ok=false.
func (t *Tailer) decide(blob string) (cleaner.Decision, bool) {
	entry, err := parser.ParseBlob(blob)
	if err != nil {
		return cleaner.Decision{Reason: cleaner.ReasonMalformed}, false
	}

	keep, reason := t.cleaner.Evaluate(entry.Command, t.tracker)
	if keep {
		t.tracker.Add(cleaner.Normalize(entry.Command))
	}
	return cleaner.Decision{Entry: entry, Keep: keep, Reason: reason}, true
}

// setupWatcher initializes the fsnotify watcher.
func (t *Tailer) setupWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	t.watcher = watcher

	if err := watcher.Add(t.opts.FilePath); err != nil {
		return err
	}

	return nil
}

// watch monitors the file for changes and outputs decisions for new entries.
func (t *Tailer) watch(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-t.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed unexpectedly")
			}

			if err := t.handleEvent(ctx, event); err != nil {
				return err
			}

		case err, ok := <-t.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// handleEvent processes a file system event.
func (t *Tailer) handleEvent(ctx context.Context, event fsnotify.Event) error {
	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		return t.readNewContent()

	case event.Op&fsnotify.Remove == fsnotify.Remove || event.Op&fsnotify.Rename == fsnotify.Rename:
		// zsh rewrites the file wholesale on fc -W, and a cleaning run
		// replaces it too.
		return t.handleRewrite(ctx)

	case event.Op&fsnotify.Chmod == fsnotify.Chmod:
		return nil
	}

	return nil
}

// readNewContent reads lines appended since the last offset and emits
// decisions for the complete entries among them. zsh appends a whole
// entry per accepted command, so the pending entry is flushed at the
// end of each batch.
func (t *Tailer) readNewContent() error {
	if _, err := t.file.Seek(t.offset, io.SeekStart); err != nil {
		return err
	}

	scanner := bufio.NewScanner(t.file)
	const maxScanTokenSize = 1024 * 1024 // 1MB
	buf := make([]byte, maxScanTokenSize)
	scanner.Buffer(buf, maxScanTokenSize)

	for scanner.Scan() {
		line := scanner.Text()

		if parser.IsEntryStart(line) {
			if t.open {
				if err := t.flush(); err != nil {
					return err
				}
			}
			t.pending.WriteString(line)
			t.open = true
			continue
		}

		if !t.open {
			// Orphaned continuation, nothing to attach it to.
			continue
		}
		t.pending.WriteByte('\n')
		t.pending.WriteString(line)
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	if t.open {
		if err := t.flush(); err != nil {
			return err
		}
	}

	var err error
	t.offset, err = t.file.Seek(0, io.SeekCurrent)
	return err
}

// flush decides and outputs the pending entry.
func (t *Tailer) flush() error {
	blob := t.pending.String()
	t.pending.Reset()
	t.open = false

	d, ok := t.decide(blob)
	if !ok {
		return nil
	}
	return t.opts.OutputFunc(d)
}

// handleRewrite reopens the file after it was replaced and re-seeds
// the dedup set without re-emitting old entries.
func (t *Tailer) handleRewrite(ctx context.Context) error {
	if t.file != nil {
		t.file.Close()
		t.file = nil
	}

	timeout := time.After(10 * time.Second)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timeout:
			return fmt.Errorf("timeout waiting for rewritten file to reappear")
		case <-ticker.C:
			f, err := os.Open(t.opts.FilePath)
			if err != nil {
				continue
			}
			t.file = f
			t.tracker = cleaner.NewTracker()
			t.pending.Reset()
			t.open = false

			if err := t.watcher.Add(t.opts.FilePath); err != nil {
				return fmt.Errorf("failed to watch rewritten file: %w", err)
			}

			if err := t.seed(0); err != nil {
				return err
			}

			fmt.Fprintf(os.Stderr, "\n==> History file rewritten, following new file <==\n")
			return nil
		}
	}
}

// close closes all resources.
func (t *Tailer) close() {
	if t.file != nil {
		t.file.Close()
	}
	if t.watcher != nil {
		t.watcher.Close()
	}
}
