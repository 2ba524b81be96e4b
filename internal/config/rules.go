package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/histclean/histclean/internal/rule"
)

// RuleConfig is one rule as it appears in a rules file.
type RuleConfig struct {
	Pattern       string `mapstructure:"pattern" json:"pattern"`
	MatchType     string `mapstructure:"match_type" json:"match_type"`
	CaseSensitive bool   `mapstructure:"case_sensitive" json:"case_sensitive"`
	Description   string `mapstructure:"description" json:"description,omitempty"`
}

// RulesConfig holds the two ordered rule lists. The ignore list keeps
// matching commands unconditionally; the allow list allows their
// deletion and takes precedence over the ignore list.
type RulesConfig struct {
	IgnoreList []RuleConfig `mapstructure:"ignore_list" json:"ignore_list"`
	AllowList  []RuleConfig `mapstructure:"allow_list" json:"allow_list"`
}

// DefaultRules returns the built-in rule set used when no rules file
// is configured.
func DefaultRules() RulesConfig {
	return RulesConfig{
		IgnoreList: []RuleConfig{
			{Pattern: "git commit", MatchType: "starts_with", Description: "Keep all git commits"},
			{Pattern: "vim", MatchType: "starts_with", Description: "Keep vim commands"},
			{Pattern: "cd ", MatchType: "starts_with", Description: "Keep directory changes"},
			{Pattern: "npm", MatchType: "starts_with", Description: "Keep npm commands"},
		},
		AllowList: []RuleConfig{
			{Pattern: "error: failed to commit transaction", MatchType: "contains", Description: "Remove pacman error messages"},
			{Pattern: "checking.*keyring.*100%", MatchType: "regex", Description: "Remove pacman progress messages"},
			{Pattern: "exists in filesystem", MatchType: "contains", Description: "Remove filesystem conflict messages"},
			{Pattern: `^\s*$`, MatchType: "regex", Description: "Remove empty commands"},
			{Pattern: "Errors occurred, no packages were upgraded", MatchType: "contains", Description: "Remove pacman error summaries"},
		},
	}
}

// compileList compiles one rule list. Invalid rules are skipped
// individually; each returned error identifies the offending pattern.
func compileList(name string, configs []RuleConfig) (rule.List, []error) {
	var (
		list rule.List
		errs []error
	)

	for _, rc := range configs {
		mode := rc.MatchType
		if mode == "" {
			mode = "contains"
		}

		m, err := rule.ParseMode(mode)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s rule %q: %w", name, rc.Pattern, err))
			continue
		}

		r, err := rule.New(rc.Pattern, m, rc.CaseSensitive, rc.Description)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s rule: %w", name, err))
			continue
		}
		list = append(list, r)
	}

	return list, errs
}

// Compile turns the configured rule lists into compiled rule.Lists,
// preserving order. Bad rules are skipped and reported in the error
// slice so the caller can log them; Compile only fails hard when a
// non-empty list produces no usable rules at all.
func (rc RulesConfig) Compile() (ignore, allow rule.List, errs []error, err error) {
	ignore, ignoreErrs := compileList("ignore", rc.IgnoreList)
	allow, allowErrs := compileList("allow", rc.AllowList)
	errs = append(errs, ignoreErrs...)
	errs = append(errs, allowErrs...)

	if len(rc.IgnoreList) > 0 && len(ignore) == 0 {
		return nil, nil, errs, fmt.Errorf("no valid ignore rules could be loaded")
	}
	if len(rc.AllowList) > 0 && len(allow) == 0 {
		return nil, nil, errs, fmt.Errorf("no valid allow rules could be loaded")
	}

	return ignore, allow, errs, nil
}

// LoadRulesFile reads a rules file (JSON or YAML, by extension) into a
// RulesConfig. Files without a recognized extension are read as JSON.
func LoadRulesFile(path string) (RulesConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".toml":
		// Viper infers the type from the extension.
	default:
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil {
		return RulesConfig{}, fmt.Errorf("reading rules file: %w", err)
	}

	var rc RulesConfig
	if err := v.Unmarshal(&rc); err != nil {
		return RulesConfig{}, fmt.Errorf("parsing rules file: %w", err)
	}

	return rc, nil
}

// sampleRules is the shape written by WriteSampleRules; the extra
// fields document the format inside the file itself.
type sampleRules struct {
	Description string       `json:"description"`
	MatchTypes  []string     `json:"match_types"`
	IgnoreList  []RuleConfig `json:"ignore_list"`
	AllowList   []RuleConfig `json:"allow_list"`
}

// WriteSampleRules writes a commented sample rules file to path, for
// users to edit into their own keep/remove lists.
func WriteSampleRules(path string) error {
	sample := sampleRules{
		Description: "histclean rule configuration",
		MatchTypes: []string{
			"exact - Match the entire command exactly",
			"contains - Command contains the pattern anywhere",
			"starts_with - Command starts with the pattern",
			"ends_with - Command ends with the pattern",
			"regex - Use regular expression matching",
		},
		IgnoreList: append(DefaultRules().IgnoreList,
			RuleConfig{Pattern: "docker", MatchType: "contains", Description: "Keep docker commands"},
			RuleConfig{Pattern: "sudo systemctl", MatchType: "starts_with", Description: "Keep system service commands"},
		),
		AllowList: append(DefaultRules().AllowList,
			RuleConfig{Pattern: "^clear$|^cls$", MatchType: "regex", Description: "Remove screen clearing commands"},
			RuleConfig{Pattern: "^ls$|^ll$|^la$", MatchType: "regex", Description: "Remove basic listing commands (keep ls with arguments)"},
		),
	}

	data, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0o644)
}
