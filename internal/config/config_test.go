package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `
[lexer]
tab_size = 4

[output]
format = "json"
language = "zh"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Lexer.TabSize != 4 {
		t.Errorf("tab_size mismatch: got %d, want 4", cfg.Lexer.TabSize)
	}
	if cfg.Output.Format != "json" || cfg.Output.Language != "zh" {
		t.Errorf("output mismatch: %+v", cfg.Output)
	}
	// 未出现的字段保留默认值
	if cfg.Output.Color != "auto" || cfg.Log.Level != "info" {
		t.Errorf("defaults not kept: %+v %+v", cfg.Output, cfg.Log)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, `
[lexer]
tab_size = 0

[output]
format = "xml"
color = "sometimes"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := err.Error()
	for _, want := range []string{"tab_size", "output.format", "output.color"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %s", msg, want)
		}
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Lexer.TabSize = -1
	cfg.Check.Workers = -2
	cfg.Log.Level = "loud"

	errs := multierr.Errors(cfg.Validate())
	if len(errs) != 3 {
		t.Fatalf("error count mismatch: got %d, want 3 (%v)", len(errs), errs)
	}
}

func TestLoadSyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	writeFile(t, path, "[lexer\ntab_size = 4\n")

	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)

	cfg := Default()
	cfg.Lexer.TabSize = 2
	cfg.Log.File = "/tmp/pylex.log"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("config mismatch after save:\n got  %+v\n want %+v", loaded, cfg)
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "pkg", "mod")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, ConfigFileName), "")
	source := filepath.Join(sub, "main.py")
	writeFile(t, source, "pass\n")

	got := FindConfigFile(source)
	want, _ := filepath.Abs(filepath.Join(root, ConfigFileName))
	if got != want {
		t.Errorf("FindConfigFile mismatch: got %q, want %q", got, want)
	}

	if got := FindConfigFile(filepath.Join(root, "missing.py")); got != "" {
		t.Errorf("missing start path should return empty, got %q", got)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("", t.TempDir())
	if err != nil {
		t.Fatalf("LoadOrDefault failed: %v", err)
	}
	if cfg.Lexer.TabSize != 8 {
		t.Errorf("expected default config, got %+v", cfg)
	}
}
