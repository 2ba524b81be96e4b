// Package config provides configuration types and rule loading for histclean.
package config

import (
	"os"
	"path/filepath"
)

// Config holds the application-wide configuration.
type Config struct {
	HistoryFile string      `mapstructure:"history_file"`
	MaxLength   int         `mapstructure:"max_length"`
	Format      string      `mapstructure:"format"`
	Verbose     bool        `mapstructure:"verbose"`
	Backup      bool        `mapstructure:"backup"`
	RulesFile   string      `mapstructure:"rules_file"`
	Rules       RulesConfig `mapstructure:"rules"`
}

// DefaultHistoryFile returns the standard zsh history location,
// falling back to a relative path when the home directory is unknown.
func DefaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zsh_history"
	}
	return filepath.Join(home, ".zsh_history")
}
