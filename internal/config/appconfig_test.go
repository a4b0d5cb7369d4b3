package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := DefaultAppConfig()
	cfg.DefaultGCodeProfile = "Mach3"
	cfg.DefaultStep = 1.5
	cfg.DefaultWinding = "CCW"
	cfg.RecentFiles = []string{"/tmp/a.dxf", "/tmp/b.dxf"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultGCodeProfile != "Mach3" {
		t.Errorf("expected DefaultGCodeProfile=Mach3, got %s", loaded.DefaultGCodeProfile)
	}
	if loaded.DefaultStep != 1.5 {
		t.Errorf("expected DefaultStep=1.5, got %f", loaded.DefaultStep)
	}
	if len(loaded.RecentFiles) != 2 {
		t.Errorf("expected 2 recent files, got %d", len(loaded.RecentFiles))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := DefaultAppConfig()
	if cfg.DefaultGCodeProfile != defaults.DefaultGCodeProfile {
		t.Errorf("expected default profile %s, got %s", defaults.DefaultGCodeProfile, cfg.DefaultGCodeProfile)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	if err := SaveAppConfig(path, DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestLoadAppConfigNilRecentFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := []byte(`{"default_step":2.0,"recent_files":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentFiles == nil {
		t.Error("RecentFiles should not be nil after loading")
	}
}

func TestPushRecentFileDeduplicatesAndCaps(t *testing.T) {
	cfg := DefaultAppConfig()
	for i := 0; i < 12; i++ {
		PushRecentFile(&cfg, filepath.Join("/tmp", "file"+string(rune('a'+i))+".dxf"))
	}
	if len(cfg.RecentFiles) != 10 {
		t.Fatalf("expected list capped at 10, got %d", len(cfg.RecentFiles))
	}

	third := cfg.RecentFiles[2]
	PushRecentFile(&cfg, third)
	if len(cfg.RecentFiles) != 10 {
		t.Errorf("expected re-pushing an existing entry not to grow the list, got %d", len(cfg.RecentFiles))
	}
	if cfg.RecentFiles[0] != third {
		t.Error("re-pushed entry should move to the front")
	}
}
