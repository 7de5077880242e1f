// Package config loads the accoutrement CLI configuration file and applies
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override the configuration file.
const (
	EnvPalettes = "ACCOUTREMENT_PALETTES"
	EnvPlugins  = "ACCOUTREMENT_PLUGINS"
	EnvRequire  = "ACCOUTREMENT_REQUIRE"
)

// Preview modes.
const (
	PreviewAuto   = "auto"
	PreviewAlways = "always"
	PreviewNever  = "never"
)

// Output formats.
const (
	FormatHex  = "hex"
	FormatRGB  = "rgb"
	FormatJSON = "json"
)

// ErrInvalidConfig is returned when the configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds CLI defaults.
type Config struct {
	// Palettes are loaded and merged in order, later files winning.
	Palettes []string `yaml:"palettes" validate:"dive,required"`
	// Plugins are adjustment plugin binaries to launch.
	Plugins []string `yaml:"plugins" validate:"dive,required"`
	// Require is the default contrast requirement for ratio checks.
	Require string `yaml:"require" validate:"contrast_standard"`
	Preview string `yaml:"preview" validate:"oneof=auto always never"`
	Format  string `yaml:"format" validate:"colour_format"`

	path string
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		Preview: PreviewAuto,
		Format:  FormatHex,
	}
}

// Path returns the file the configuration was read from, or "".
func (c *Config) Path() string {
	return c.path
}

// Load reads the configuration from path, or from the first existing search
// path when path is empty. A missing discovered file yields defaults; a
// missing explicit file is an error. Environment overrides are applied and
// the result is validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	chosen := path
	if chosen == "" {
		for _, p := range SearchPaths() {
			if _, err := os.Stat(p); err == nil {
				chosen = p
				break
			}
		}
	}

	if chosen != "" {
		data, err := os.ReadFile(chosen)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", chosen, err)
		}
		cfg.path = chosen
		cfg.resolvePaths(filepath.Dir(chosen))
	}

	cfg.applyEnv(os.LookupEnv)
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists the locations checked for a configuration file.
func SearchPaths() []string {
	var out []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		out = append(out, filepath.Join(xdg, "accoutrement", "config.yaml"))
	}
	if home, _ := os.UserHomeDir(); home != "" {
		out = append(out, filepath.Join(home, ".config", "accoutrement", "config.yaml"))
	}
	return out
}

// resolvePaths makes relative palette and plugin paths relative to dir.
func (c *Config) resolvePaths(dir string) {
	for i, p := range c.Palettes {
		c.Palettes[i] = joinRelative(dir, p)
	}
	for i, p := range c.Plugins {
		c.Plugins[i] = joinRelative(dir, p)
	}
}

func joinRelative(dir, p string) string {
	p = expandHome(p)
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvPalettes); ok {
		c.Palettes = splitList(v)
	}
	if v, ok := lookup(EnvPlugins); ok {
		c.Plugins = splitList(v)
	}
	if v, ok := lookup(EnvRequire); ok {
		c.Require = strings.TrimSpace(v)
	}
}

// splitList splits a PATH-style list, dropping empty elements.
func splitList(v string) []string {
	var out []string
	for _, p := range filepath.SplitList(v) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, expandHome(p))
		}
	}
	return out
}

func (c *Config) normalize() {
	c.Preview = strings.ToLower(strings.TrimSpace(c.Preview))
	if c.Preview == "" {
		c.Preview = PreviewAuto
	}
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = FormatHex
	}
}
