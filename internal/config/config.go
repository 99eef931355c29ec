// Package config loads and writes the application configuration. Settings
// live in .glean/config.yaml when the working directory has one, otherwise
// in ~/.config/glean-teleprompter/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	History  HistoryConfig  `mapstructure:"history"`
	Autosave AutosaveConfig `mapstructure:"autosave"`
	Log      LogConfig      `mapstructure:"log"`
}

// StoreConfig locates and bounds the durable key-value store.
type StoreConfig struct {
	Dir           string `mapstructure:"dir"`
	CapacityBytes int64  `mapstructure:"capacity_bytes"`
	RetentionDays int    `mapstructure:"retention_days"`
}

// HistoryConfig bounds the undo stack and the coalescing window.
type HistoryConfig struct {
	MaxEntries       int `mapstructure:"max_entries"`
	CoalesceWindowMS int `mapstructure:"coalesce_window_ms"`
}

// AutosaveConfig tunes the save orchestrator timers.
type AutosaveConfig struct {
	DebounceMS   int `mapstructure:"debounce_ms"`
	CheckpointMS int `mapstructure:"checkpoint_ms"`
}

// LogConfig controls the log file and level.
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

const localConfigDir = ".glean"

// DefaultConfigPath returns the config file to use: project-local
// .glean/config.yaml when present, else the user-level config path.
func DefaultConfigPath() string {
	local := filepath.Join(localConfigDir, "config.yaml")
	if _, err := os.Stat(local); err == nil {
		return local
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "glean-teleprompter", "config.yaml")
}

// StorePath returns the store directory for a given config location. A
// project-local config keeps its store alongside it; anything else uses the
// user-level data directory.
func StorePath(configPath string) string {
	home, _ := os.UserHomeDir()
	fallback := filepath.Join(home, ".local", "share", "glean-teleprompter", "store")
	if configPath == "" {
		return fallback
	}

	clean := filepath.Clean(configPath)
	suffix := filepath.Join(localConfigDir, "config.yaml")
	if strings.HasSuffix(clean, suffix) {
		return filepath.Join(filepath.Dir(clean), "store")
	}
	return fallback
}

func setDefaults(v *viper.Viper, configPath string) {
	v.SetDefault("store.dir", StorePath(configPath))
	v.SetDefault("store.capacity_bytes", int64(5*1024*1024))
	v.SetDefault("store.retention_days", 30)
	v.SetDefault("history.max_entries", 50)
	v.SetDefault("history.coalesce_window_ms", 50)
	v.SetDefault("autosave.debounce_ms", 1000)
	v.SetDefault("autosave.checkpoint_ms", 5000)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load reads the config file at path, applying defaults for anything unset.
// A missing file is not an error; defaults apply wholesale.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, path)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(path); statErr == nil {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// WriteDefaultConfig creates a config file populated with defaults.
func WriteDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	v := viper.New()
	setDefaults(v, path)
	v.SetConfigFile(path)
	return v.WriteConfigAs(path)
}
