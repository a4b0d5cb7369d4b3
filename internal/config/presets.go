package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/hsmpeel/internal/planner"
)

// PlanPreset is a named, JSON-friendly snapshot of planner.PlanOptions
// (§6's tunable-constants table), stored with string enum names instead
// of planner's internal ints so the file stays readable and stable
// across any future reordering of those constants.
type PlanPreset struct {
	Name             string  `json:"name"`
	Step             float64 `json:"step"`
	Winding          string  `json:"winding"` // "CW", "CCW", or "Closest"
	IterationCount   int     `json:"iteration_count"`
	BreadthFirst     bool    `json:"breadth_first"`
	CornerZoom       float64 `json:"corner_zoom"`
	CornerZoomEffect float64 `json:"corner_zoom_effect"`
	JitterFilter     float64 `json:"jitter_filter"`
	Kp               float64 `json:"kp"`
	TimesliceMillis  int64   `json:"timeslice_millis"`
}

// FromPlanOptions snapshots opts under name.
func FromPlanOptions(name string, opts planner.PlanOptions) PlanPreset {
	return PlanPreset{
		Name:             name,
		Step:             opts.Step,
		Winding:          opts.Winding.String(),
		IterationCount:   opts.IterationCount,
		BreadthFirst:     opts.BreadthFirst,
		CornerZoom:       opts.CornerZoom,
		CornerZoomEffect: opts.CornerZoomEffect,
		JitterFilter:     opts.JitterFilter,
		Kp:               opts.Kp,
		TimesliceMillis:  opts.Timeslice.Milliseconds(),
	}
}

// ToPlanOptions converts the preset back into planner.PlanOptions.
func (p PlanPreset) ToPlanOptions() (planner.PlanOptions, error) {
	winding, err := parseWinding(p.Winding)
	if err != nil {
		return planner.PlanOptions{}, err
	}
	return planner.PlanOptions{
		Step:             p.Step,
		Winding:          winding,
		IterationCount:   p.IterationCount,
		BreadthFirst:     p.BreadthFirst,
		CornerZoom:       p.CornerZoom,
		CornerZoomEffect: p.CornerZoomEffect,
		JitterFilter:     p.JitterFilter,
		Kp:               p.Kp,
		Timeslice:        time.Duration(p.TimesliceMillis) * time.Millisecond,
	}, nil
}

func parseWinding(s string) (planner.Winding, error) {
	switch s {
	case "CW":
		return planner.CW, nil
	case "CCW":
		return planner.CCW, nil
	case "Closest":
		return planner.Closest, nil
	default:
		return 0, fmt.Errorf("unknown winding %q", s)
	}
}

// DefaultPresetsDir returns the OS-conventional per-user config
// directory for hsmpeel's presets file.
func DefaultPresetsDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hsmpeel"), nil
}

// DefaultPresetsPath returns the default file path for saved presets.
func DefaultPresetsPath() (string, error) {
	dir, err := DefaultPresetsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "presets.json"), nil
}

// SavePresets writes presets to path as indented JSON.
func SavePresets(path string, presets []PlanPreset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPresets reads presets from path, returning an empty slice if the
// file does not exist.
func LoadPresets(path string) ([]PlanPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []PlanPreset{}, nil
		}
		return nil, err
	}
	var presets []PlanPreset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, err
	}
	return presets, nil
}
