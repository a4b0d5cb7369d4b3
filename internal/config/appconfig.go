// Package config persists hsmpeel's user-facing settings: the default
// machining/gcode parameters, named toolpath presets, and recent-file
// history, mirroring the teacher's project-settings layer but scoped to
// a pocket planner instead of a sheet optimizer.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// AppConfig holds the persisted application-level defaults.
type AppConfig struct {
	DefaultGCodeProfile string   `json:"default_gcode_profile"`
	DefaultStep         float64  `json:"default_step"`
	DefaultWinding      string   `json:"default_winding"`
	RecentFiles         []string `json:"recent_files"`
}

// DefaultAppConfig returns the factory-default configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultGCodeProfile: "Grbl",
		DefaultStep:         2.0,
		DefaultWinding:      "CW",
		RecentFiles:         []string{},
	}
}

// DefaultConfigDir returns ~/.hsmpeel, the application's config directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".hsmpeel")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists config to path as indented JSON, creating parent
// directories as needed.
func SaveAppConfig(path string, config AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from path. A missing file yields
// DefaultAppConfig with no error.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}
		return AppConfig{}, err
	}
	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}
	if config.RecentFiles == nil {
		config.RecentFiles = []string{}
	}
	return config, nil
}

// PushRecentFile prepends path to cfg's recent-file list, de-duplicating
// and capping the list at 10 entries.
func PushRecentFile(cfg *AppConfig, path string) {
	filtered := make([]string, 0, len(cfg.RecentFiles)+1)
	filtered = append(filtered, path)
	for _, p := range cfg.RecentFiles {
		if p != path {
			filtered = append(filtered, p)
		}
	}
	if len(filtered) > 10 {
		filtered = filtered[:10]
	}
	cfg.RecentFiles = filtered
}
