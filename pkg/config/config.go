// Package config provides configuration management for the mason build tool.
// It handles loading, validating and persisting tool settings such as the
// default compiler identity, the cache location and logging preferences. The
// package supports YAML configuration files and provides sensible defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/mason/pkg/compiler"
	"github.com/glorpus-work/mason/pkg/errors"
	"github.com/glorpus-work/mason/pkg/fsutil"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFileName is the name of the tool configuration file.
const DefaultConfigFileName = "config.yaml"

// Config represents the tool configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings contains the general tool settings.
type Settings struct {
	// DefaultCompiler is the compiler identity assumed when a command does
	// not specify one.
	DefaultCompiler string `yaml:"default_compiler"`

	// CacheDir holds derived data such as version-resolution caches.
	CacheDir string `yaml:"cache_dir"`

	LogLevel string `yaml:"log_level"`
	NoColor  bool   `yaml:"no_color"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	cacheDir, err := fsutil.GetCacheDir()
	if err != nil {
		cacheDir = ""
	}
	return &Config{
		Settings: Settings{
			DefaultCompiler: compiler.DefaultName,
			CacheDir:        cacheDir,
			LogLevel:        "info",
			NoColor:         false,
		},
	}
}

// DefaultConfigPath returns the path of the user-level configuration file.
func DefaultConfigPath() (string, error) {
	configDir, err := fsutil.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, DefaultConfigFileName), nil
}

// LoadConfig reads a configuration file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to read config file %q", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(errors.ErrConfigParse, "config file %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Settings.DefaultCompiler == "" {
		return errors.Wrap(errors.ErrConfigValidation, "default compiler cannot be empty")
	}
	if _, ok := compiler.Get(c.Settings.DefaultCompiler); !ok {
		return errors.Wrapf(errors.ErrConfigValidation,
			"unknown default compiler %q", c.Settings.DefaultCompiler)
	}
	return nil
}

// SaveConfig writes the configuration as YAML, creating the directory if
// needed.
func (c *Config) SaveConfig(path string) (err error) {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}
	if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create config file %q", path)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	if err = enc.Encode(c); err != nil {
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}
	return err
}

// VersionCacheFile returns the per-package version-cache path inside the
// cache directory, or empty when caching is disabled.
func (c *Config) VersionCacheFile(packageName string) string {
	if c.Settings.CacheDir == "" || packageName == "" {
		return ""
	}
	return filepath.Join(c.Settings.CacheDir, "versions", packageName+".json")
}
