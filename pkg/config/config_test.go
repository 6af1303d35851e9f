package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "hifriend.yml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadBasic(t *testing.T) {
	path := writeConfig(t, `
source_roots:
  - lib
  - app
excludes:
  - vendor
hooks:
  - attr_reader
  - attr_writer
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.SourceRoots) != 2 || cfg.SourceRoots[0] != "app" || cfg.SourceRoots[1] != "lib" {
		t.Fatalf("SourceRoots unexpected (sorted): %#v", cfg.SourceRoots)
	}
	if len(cfg.Excludes) != 1 || cfg.Excludes[0] != "vendor" {
		t.Fatalf("Excludes unexpected: %#v", cfg.Excludes)
	}
	if !cfg.HookEnabled("attr_reader") || !cfg.HookEnabled("attr_writer") {
		t.Fatalf("expected listed hooks to be enabled")
	}
	if cfg.HookEnabled("attr_accessor") {
		t.Fatalf("attr_accessor was not listed, expected it disabled")
	}
}

func TestLoadScalarSourceRoot(t *testing.T) {
	path := writeConfig(t, `
source_roots: lib
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.SourceRoots) != 1 || cfg.SourceRoots[0] != "lib" {
		t.Fatalf("expected a single-element SourceRoots from a scalar, got %#v", cfg.SourceRoots)
	}
}

func TestLoadDefaultsHooksAllEnabled(t *testing.T) {
	path := writeConfig(t, `
source_roots:
  - lib
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	for _, hook := range defaultHooks {
		if !cfg.HookEnabled(hook) {
			t.Fatalf("expected %s enabled by default when hooks is unset", hook)
		}
	}
}

func TestLoadRejectsEmptySourceRoots(t *testing.T) {
	path := writeConfig(t, `
excludes:
  - vendor
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected an error for missing source_roots")
	}
	if !strings.Contains(err.Error(), "source_roots must list at least one path") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsUnknownHook(t *testing.T) {
	path := writeConfig(t, `
source_roots:
  - lib
hooks:
  - attr_reader
  - not_a_real_hook
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected an error for an unknown hook")
	}
	if !strings.Contains(err.Error(), `unknown hook "not_a_real_hook"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := writeConfig(t, `
source_roots:
  - lib
typo_field: true
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected an error for an unknown top-level field")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hifriend.yml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write empty config: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected an error for an empty file")
	}
}

func TestExcluded(t *testing.T) {
	cfg := &Config{Excludes: []string{"vendor", "spec/fixtures"}}
	cases := map[string]bool{
		"vendor/gems/foo.rb":    true,
		"vendor":                true,
		"spec/fixtures/a.rb":    true,
		"spec/other/a.rb":       false,
		"lib/vendor_helper.rb":  false,
	}
	for path, want := range cases {
		if got := cfg.Excluded(path); got != want {
			t.Fatalf("Excluded(%q) = %v, want %v", path, got, want)
		}
	}
}
