// Package config handles the tool's global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/rapport/config.yml.
// Every field is optional; zero values fall back to defaults.
type Config struct {
	TemplateDir    string `yaml:"template_dir,omitempty" json:"template_dir,omitempty"`         // Directory holding the report template
	OutputDir      string `yaml:"output_dir,omitempty" json:"output_dir,omitempty"`             // Where rendered reports are written
	CristinBaseURL string `yaml:"cristin_base_url,omitempty" json:"cristin_base_url,omitempty"` // API base URL override
	CachePath      string `yaml:"cache_path,omitempty" json:"cache_path,omitempty"`             // Snapshot cache database path
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "rapport"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// CacheFile is the default snapshot cache file name.
	CacheFile = "snapshots.db"

	// DefaultTemplateDir is where the template lives when not configured.
	DefaultTemplateDir = "templates"
	// DefaultOutputDir is where reports land when not configured.
	DefaultOutputDir = "reports"
)

// cache holds the loaded config so repeated lookups don't reread the file.
var cache *Config

// Path returns the path to the global config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/rapport/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the global configuration file. A missing file returns an empty
// config, not an error.
func Load() (*Config, error) {
	if cache != nil {
		return cache, nil
	}

	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.TemplateDir = ExpandTilde(cfg.TemplateDir)
	cfg.OutputDir = ExpandTilde(cfg.OutputDir)
	cfg.CachePath = ExpandTilde(cfg.CachePath)

	cache = &cfg
	return &cfg, nil
}

// Save writes the configuration to the global config file, creating the
// directory as needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot resolve config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	cache = nil
	return nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	cache = nil
}

// TemplateDirOrDefault returns the configured template directory or the
// default.
func (c *Config) TemplateDirOrDefault() string {
	if c.TemplateDir != "" {
		return c.TemplateDir
	}
	return DefaultTemplateDir
}

// OutputDirOrDefault returns the configured output directory or the default.
func (c *Config) OutputDirOrDefault() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return DefaultOutputDir
}

// CachePathOrDefault returns the configured cache path, or a default next to
// the config file.
func (c *Config) CachePathOrDefault() string {
	if c.CachePath != "" {
		return c.CachePath
	}
	path := Path()
	if path == "" {
		return CacheFile
	}
	return filepath.Join(filepath.Dir(path), CacheFile)
}

// ExpandTilde expands a leading ~ to the user's home directory. Returns the
// path unchanged when it doesn't start with ~ or the home directory is
// unknown.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
