package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/histclean/histclean/internal/config"
)

func TestRunRulesShow_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	rulesShowCmd.SetOut(&out)

	if err := runRulesShow(rulesShowCmd, nil); err != nil {
		t.Fatalf("runRulesShow() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "IGNORE_LIST:") || !strings.Contains(got, "ALLOW_LIST:") {
		t.Errorf("output missing rule sections:\n%s", got)
	}
	if !strings.Contains(got, "git commit") {
		t.Errorf("output missing default ignore rule:\n%s", got)
	}
	if !strings.Contains(got, "error: failed to commit transaction") {
		t.Errorf("output missing default allow rule:\n%s", got)
	}
}

func TestRunRulesShow_RulesFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "rules.json")
	content := `{"ignore_list": [{"pattern": "terraform", "match_type": "starts_with"}], "allow_list": []}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.Set("rules_file", path)

	var out bytes.Buffer
	rulesShowCmd.SetOut(&out)

	if err := runRulesShow(rulesShowCmd, nil); err != nil {
		t.Fatalf("runRulesShow() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "terraform") {
		t.Errorf("output missing rule from file:\n%s", got)
	}
	if strings.Contains(got, "git commit") {
		t.Errorf("built-in defaults shown despite configured rules file:\n%s", got)
	}
}

func TestRunRulesInit(t *testing.T) {
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "rules.json")

	var out bytes.Buffer
	rulesInitCmd.SetOut(&out)

	if err := runRulesInit(rulesInitCmd, []string{path}); err != nil {
		t.Fatalf("runRulesInit() error = %v", err)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("output does not mention the written file:\n%s", out.String())
	}

	rc, err := config.LoadRulesFile(path)
	if err != nil {
		t.Fatalf("written sample does not load: %v", err)
	}
	if _, _, _, err := rc.Compile(); err != nil {
		t.Errorf("written sample does not compile: %v", err)
	}
}
