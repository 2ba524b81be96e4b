// Package backup creates and restores timestamped copies of the
// history file around a cleaning run.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Create copies path to a timestamped sibling file
// (<name>.backup_YYYYMMDD_HHMMSS) and returns the backup path.
// The original's file mode is preserved.
func Create(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat history file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read history file: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	backupPath := filepath.Join(
		filepath.Dir(path),
		fmt.Sprintf("%s.backup_%s", filepath.Base(path), stamp),
	)

	if err := os.WriteFile(backupPath, data, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	return backupPath, nil
}

// Restore copies the backup over path, undoing a failed write.
func Restore(backupPath, path string) error {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}

	mode := os.FileMode(0o600)
	if info, err := os.Stat(backupPath); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("restore history file: %w", err)
	}

	return nil
}
