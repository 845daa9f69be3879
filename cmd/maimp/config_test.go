package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/metalagman/maimp/internal/config"
	"github.com/spf13/viper"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	repoRoot := t.TempDir()

	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := loadConfig(repoRoot)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Repository.URL != config.DefaultRepoURL {
		t.Fatalf("repository.url = %q, want %q", cfg.Repository.URL, config.DefaultRepoURL)
	}
	if want := filepath.Join(repoRoot, "docket_manager_workspace"); cfg.Repository.Workspace != want {
		t.Fatalf("workspace = %q, want %q", cfg.Repository.Workspace, want)
	}
	if want := filepath.Join(repoRoot, config.DefaultStateDir); cfg.Session.StateDir != want {
		t.Fatalf("state dir = %q, want %q", cfg.Session.StateDir, want)
	}
	if cfg.Session.StepDelay != 100*time.Millisecond {
		t.Fatalf("step delay = %s, want 100ms", cfg.Session.StepDelay)
	}
}

func TestLoadConfig_UsesYAML(t *testing.T) {
	repoRoot := t.TempDir()
	if err := writeTestFile(filepath.Join(repoRoot, config.DefaultConfigPath), `repository:
  url: https://example.com/acme/widgets.git
  workspace: /tmp/widgets
session:
  step_delay: 1s
icons:
  letter: W
  sizes: [32, 64]
retention:
  keep_last: 10
  keep_days: 5
`); err != nil {
		t.Fatalf("write yaml config: %v", err)
	}

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("config", config.DefaultConfigPath)

	cfg, err := loadConfig(repoRoot)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Repository.URL != "https://example.com/acme/widgets.git" {
		t.Fatalf("repository.url = %q", cfg.Repository.URL)
	}
	if cfg.Repository.Workspace != "/tmp/widgets" {
		t.Fatalf("workspace = %q, want absolute path kept", cfg.Repository.Workspace)
	}
	if cfg.Session.StepDelay != time.Second {
		t.Fatalf("step delay = %s, want 1s", cfg.Session.StepDelay)
	}
	if cfg.Icons.Letter != "W" || len(cfg.Icons.Sizes) != 2 || cfg.Icons.Sizes[1] != 64 {
		t.Fatalf("icons = %+v", cfg.Icons)
	}
	if cfg.Retention.KeepLast != 10 || cfg.Retention.KeepDays != 5 {
		t.Fatalf("retention = %+v, want keep_last=10 keep_days=5", cfg.Retention)
	}
}

func TestLoadConfig_AcceptsZeroStepDelay(t *testing.T) {
	repoRoot := t.TempDir()
	if err := writeTestFile(filepath.Join(repoRoot, config.DefaultConfigPath), "session:\n  step_delay: 0\n"); err != nil {
		t.Fatalf("write yaml config: %v", err)
	}

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("config", config.DefaultConfigPath)

	cfg, err := loadConfig(repoRoot)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Session.StepDelay != 0 {
		t.Fatalf("step delay = %s, want 0", cfg.Session.StepDelay)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	repoRoot := t.TempDir()

	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("MAIMP_SESSION_STEP_DELAY", "0s")
	t.Setenv("MAIMP_RETENTION_KEEP_LAST", "7")
	t.Setenv("MAIMP_ICONS_SIZES", "32,64")
	initConfig()

	cfg, err := loadConfig(repoRoot)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Session.StepDelay != 0 {
		t.Fatalf("step delay = %s, want 0", cfg.Session.StepDelay)
	}
	if cfg.Retention.KeepLast != 7 {
		t.Fatalf("keep_last = %d, want 7", cfg.Retention.KeepLast)
	}
	if len(cfg.Icons.Sizes) != 2 || cfg.Icons.Sizes[0] != 32 {
		t.Fatalf("sizes = %v, want [32 64]", cfg.Icons.Sizes)
	}
}

func TestLoadConfig_RejectsInvalidSettings(t *testing.T) {
	repoRoot := t.TempDir()
	if err := writeTestFile(filepath.Join(repoRoot, config.DefaultConfigPath), `icons:
  background: purple
`); err != nil {
		t.Fatalf("write yaml config: %v", err)
	}

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("config", config.DefaultConfigPath)

	_, err := loadConfig(repoRoot)
	if err == nil {
		t.Fatal("expected error for invalid background color")
	}
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("error = %v, want ErrInvalid", err)
	}
}

func TestRepoName(t *testing.T) {
	tests := map[string]string{
		"https://github.com/davidkarpay/Docket_Manager.git": "Docket_Manager",
		"https://github.com/acme/widgets/":                  "widgets",
		"git@github.com:acme/gadgets.git":                   "gadgets",
		"local":                                             "local",
	}
	for in, want := range tests {
		if got := repoName(in); got != want {
			t.Fatalf("repoName(%q) = %q, want %q", in, got, want)
		}
	}
}

func writeTestFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
