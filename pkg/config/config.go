// Package config loads a project's hifriend.yml: which source roots to
// walk, which paths to exclude, and which call hooks are enabled.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultHooks are the call hooks recognized by the visitor when a
// project's config doesn't list any explicitly.
var defaultHooks = []string{"attr_reader", "attr_writer", "attr_accessor"}

// Config is the parsed contents of hifriend.yml.
type Config struct {
	Path        string
	SourceRoots []string
	Excludes    []string
	Hooks       []string
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load parses hifriend.yml from disk, returning a validated config.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", absPath)
		}
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs ValidationError
	if len(c.SourceRoots) == 0 {
		errs.Issues = append(errs.Issues, "source_roots must list at least one path")
	}
	seen := make(map[string]struct{}, len(c.SourceRoots))
	for _, root := range c.SourceRoots {
		if _, exists := seen[root]; exists {
			errs.Issues = append(errs.Issues, fmt.Sprintf("source_roots contains duplicate %q", root))
			continue
		}
		seen[root] = struct{}{}
	}
	for _, hook := range c.Hooks {
		if !isKnownHook(hook) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("hooks: unknown hook %q", hook))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func isKnownHook(name string) bool {
	for _, h := range defaultHooks {
		if h == name {
			return true
		}
	}
	return false
}

// HookEnabled reports whether name should fire during the walk: every
// known hook is enabled unless the config lists an explicit, non-empty
// Hooks allowlist that excludes it.
func (c *Config) HookEnabled(name string) bool {
	if len(c.Hooks) == 0 {
		return true
	}
	for _, h := range c.Hooks {
		if h == name {
			return true
		}
	}
	return false
}

// Excluded reports whether relPath falls under one of the configured
// exclude prefixes.
func (c *Config) Excluded(relPath string) bool {
	clean := filepath.ToSlash(relPath)
	for _, ex := range c.Excludes {
		ex = filepath.ToSlash(ex)
		if clean == ex || strings.HasPrefix(clean, ex+"/") {
			return true
		}
	}
	return false
}

type configFile struct {
	SourceRoots stringList `yaml:"source_roots"`
	Excludes    stringList `yaml:"excludes"`
	Hooks       stringList `yaml:"hooks"`
}

func (cf configFile) toConfig(path string) *Config {
	roots := cf.SourceRoots.Clone()
	sort.Strings(roots)
	excludes := cf.Excludes.Clone()
	sort.Strings(excludes)
	return &Config{
		Path:        path,
		SourceRoots: roots,
		Excludes:    excludes,
		Hooks:       cf.Hooks.Clone(),
	}
}

type stringList []string

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			str = strings.TrimSpace(str)
			if str == "" {
				continue
			}
			items = append(items, str)
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("config: expected string or sequence for list but found %s", value.ShortTag())
	}
}
