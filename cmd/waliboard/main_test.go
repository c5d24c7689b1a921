package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/waliboard/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCoverFlagsOverrides(t *testing.T) {
	var stderr bytes.Buffer
	f, err := parseCoverFlags([]string{"-color", "#ffb6c1", "-x", "10", "-y", "20", "-width", "640"}, &stderr)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg := config.DefaultConfig()
	if err := f.apply(cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if cfg.Background != "#ffb6c1" || cfg.Width != 640 || cfg.Height != config.DefaultHeight {
		t.Fatalf("cfg = %+v", cfg)
	}
	bounds, centered := cfg.Bounds()
	if centered || bounds.X != 10 || bounds.Y != 20 {
		t.Fatalf("bounds = %+v centered=%v", bounds, centered)
	}
}

func TestCoverFlagsLeaveConfigAlone(t *testing.T) {
	f, err := parseCoverFlags(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	cfg := config.DefaultConfig()
	if err := f.apply(cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, centered := cfg.Bounds(); !centered {
		t.Fatalf("cover should be centered without -x/-y")
	}
}

func TestCoverFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"x without y", []string{"-x", "5"}},
		{"bad color", []string{"-color", "mauve"}},
		{"too small", []string{"-width", "50"}},
		{"bad log level", []string{"-log-level", "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := parseCoverFlags(tt.args, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if err := f.apply(config.DefaultConfig()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if _, err := parseCoverFlags([]string{"extra"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("positional argument should be rejected")
	}
	if _, err := parseCoverFlags([]string{"-h"}, &bytes.Buffer{}); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("-h err = %v, want flag.ErrHelp", err)
	}
}

func TestConfigValidateCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	good := writeConfig(t, "width: 500\nbackground: \"#000\"\n")
	if code := configValidate([]string{"--path", good}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d, stderr %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "config: ok") {
		t.Fatalf("stdout = %q", stdout.String())
	}

	stdout.Reset()
	stderr.Reset()
	bad := writeConfig(t, "opacity: 3\n")
	if code := configValidate([]string{"--path", bad}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "opacity") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestConfigPrintCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := writeConfig(t, "width: 512\n")
	if code := configPrint([]string{"--path", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d, stderr %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "width: 512") {
		t.Fatalf("effective config missing override:\n%s", stdout.String())
	}

	stdout.Reset()
	if code := configPrint([]string{"--path", path, "--defaults"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout.String(), "width: 400") {
		t.Fatalf("defaults missing width:\n%s", stdout.String())
	}
}

func TestConfigExplainCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	path := writeConfig(t, "background: \"#123456\"\n")
	if code := configExplain([]string{"--path", path, "background"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d, stderr %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "source: file:") || !strings.Contains(out, "config.yaml:1:") || !strings.Contains(out, "#123456") {
		t.Fatalf("explain output:\n%s", out)
	}

	stdout.Reset()
	if code := configExplain([]string{"--path", path, "width"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout.String(), "source: default") {
		t.Fatalf("explain output:\n%s", stdout.String())
	}

	if code := configExplain([]string{"--path", path}, &stdout, &stderr); code != 2 {
		t.Fatalf("missing path exit %d, want 2", code)
	}
	if code := configExplain([]string{"--path", path, "nope"}, &stdout, &stderr); code != 1 {
		t.Fatalf("unknown key exit %d, want 1", code)
	}
}

func TestConfigInitWritesDefaults(t *testing.T) {
	target := filepath.Join(t.TempDir(), "sub", "config.yaml")
	var stdout, stderr bytes.Buffer
	if code := configInit([]string{"--path", target, "--defaults"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d, stderr %s", code, stderr.String())
	}

	res, err := config.LoadFromPath(target)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if res.Config.Width != config.DefaultWidth || len(res.Config.Presets) != 6 {
		t.Fatalf("written config = %+v", res.Config)
	}

	if code := configInit([]string{"--path", target, "--defaults"}, &stdout, &stderr); code != 1 {
		t.Fatalf("second init exit %d, want 1", code)
	}
	if code := configInit([]string{"--path", target, "--defaults", "--force"}, &stdout, &stderr); code != 0 {
		t.Fatalf("forced init exit %d", code)
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceDefault}, "default"},
		{config.Source{Kind: config.SourceFile}, "file"},
		{config.Source{Kind: config.SourceFile, File: "/a.yaml"}, "file:/a.yaml"},
		{config.Source{Kind: config.SourceFile, File: "/a.yaml", Line: 3, Column: 5}, "file:/a.yaml:3:5"},
	}
	for _, tt := range tests {
		if got := formatSource(tt.src); got != tt.want {
			t.Fatalf("formatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}
