package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/metalagman/maimp/internal/icon"
	"github.com/metalagman/maimp/internal/report"
	"github.com/spf13/viper"
)

func TestRunSession_WritesReportAndRecordsSession(t *testing.T) {
	repoRoot := t.TempDir()

	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := loadConfig(repoRoot)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Session.StepDelay = 0

	var out bytes.Buffer
	if err := runSession(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run session: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"MULTI-AGENT SESSION MANAGER",
		"Target: Docket_Manager Repository",
		"SESSION COMPLETE",
		"38 tasks executed",
		"13 agents deployed",
		"maimp sessions show ",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}

	matches, err := filepath.Glob(filepath.Join(cfg.Repository.Workspace, "report_*.json"))
	if err != nil {
		t.Fatalf("glob reports: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("reports = %v, want exactly one", matches)
	}
	rep, err := report.Load(matches[0])
	if err != nil {
		t.Fatalf("load report: %v", err)
	}
	if rep.Repository != cfg.Repository.URL {
		t.Fatalf("report repository = %q", rep.Repository)
	}

	var listed bytes.Buffer
	t.Chdir(repoRoot)
	cmd := newRootCmd()
	cmd.SetOut(&listed)
	cmd.SetArgs([]string{"sessions", "list"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	if !strings.Contains(listed.String(), rep.SessionID) {
		t.Fatalf("sessions list missing %s:\n%s", rep.SessionID, listed.String())
	}
}

func TestIconsCommand_WritesThreeIcons(t *testing.T) {
	repoRoot := t.TempDir()
	t.Chdir(repoRoot)

	viper.Reset()
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"icons", "--out", "assets"})
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("icons: %v", err)
	}

	for _, size := range []int{16, 48, 128} {
		path := filepath.Join(repoRoot, "assets", icon.FileName(size))
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("open %s: %v", path, err)
		}
		img, err := png.Decode(f)
		_ = f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
		if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
			t.Fatalf("%s bounds = %v, want %dx%d", path, b, size, size)
		}
	}
	if !strings.Contains(out.String(), "All icons created successfully!") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "(128x128)") {
		t.Fatalf("output missing size line:\n%s", out.String())
	}
}

func TestIconOptions_RejectsBadColor(t *testing.T) {
	repoRoot := t.TempDir()

	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := loadConfig(repoRoot)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Icons.Foreground = "not-a-color"
	if _, err := iconOptions(cfg.Icons); err == nil {
		t.Fatal("expected error for invalid foreground")
	}
}
