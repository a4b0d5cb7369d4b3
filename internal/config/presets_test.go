package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/hsmpeel/internal/planner"
)

func TestFromPlanOptionsAndBackRoundTrips(t *testing.T) {
	opts := planner.DefaultPlanOptions(1.5, planner.CCW)
	preset := FromPlanOptions("Roughing", opts)

	if preset.Winding != "CCW" {
		t.Errorf("expected winding CCW, got %s", preset.Winding)
	}

	back, err := preset.ToPlanOptions()
	if err != nil {
		t.Fatalf("ToPlanOptions: %v", err)
	}
	if back.Step != opts.Step {
		t.Errorf("expected step %f, got %f", opts.Step, back.Step)
	}
	if back.Winding != opts.Winding {
		t.Errorf("expected winding %v, got %v", opts.Winding, back.Winding)
	}
	if back.Timeslice != opts.Timeslice {
		t.Errorf("expected timeslice %v, got %v", opts.Timeslice, back.Timeslice)
	}
}

func TestToPlanOptionsRejectsUnknownWinding(t *testing.T) {
	preset := PlanPreset{Name: "Bad", Winding: "Sideways"}
	if _, err := preset.ToPlanOptions(); err == nil {
		t.Fatal("expected error for unknown winding")
	}
}

func TestSaveAndLoadPresets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.json")

	presets := []PlanPreset{
		FromPlanOptions("Roughing", planner.DefaultPlanOptions(2.0, planner.CW)),
		FromPlanOptions("Finishing", planner.DefaultPlanOptions(0.5, planner.Closest)),
	}

	if err := SavePresets(path, presets); err != nil {
		t.Fatalf("SavePresets: %v", err)
	}

	loaded, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(loaded))
	}
	if loaded[0].Name != "Roughing" {
		t.Errorf("expected first preset Roughing, got %s", loaded[0].Name)
	}
	if loaded[1].Winding != "Closest" {
		t.Errorf("expected second preset winding Closest, got %s", loaded[1].Winding)
	}
}

func TestLoadPresetsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.json")

	presets, err := LoadPresets(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if len(presets) != 0 {
		t.Fatalf("expected 0 presets for missing file, got %d", len(presets))
	}
}

func TestLoadPresetsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadPresets(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
