package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rcsim/internal/circuit"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.EMF != 10.0 {
		t.Errorf("expected emf 10, got %g", cfg.EMF)
	}
	if cfg.Resistance != 1000.0 {
		t.Errorf("expected resistance 1000, got %g", cfg.Resistance)
	}
	if cfg.Capacitance != 100.0 {
		t.Errorf("expected capacitance 100, got %g", cfg.Capacitance)
	}
	if cfg.SwitchClosed {
		t.Error("switch should default to open")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.yaml")

	cfg := &Config{EMF: 20.0, Resistance: 5000.0, Capacitance: 1000.0, SwitchClosed: true, Duration: 2.5}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: got %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_PartialFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.yaml")
	if err := os.WriteFile(path, []byte("resistance: 500.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Resistance != 500.0 {
		t.Errorf("resistance = %g, want 500", cfg.Resistance)
	}
	if cfg.EMF != circuit.DefaultEMF {
		t.Errorf("emf = %g, want default %g", cfg.EMF, circuit.DefaultEMF)
	}
	if cfg.Capacitance != circuit.DefaultCapacitance {
		t.Errorf("capacitance = %g, want default %g", cfg.Capacitance, circuit.DefaultCapacitance)
	}
}

func TestLoad_InvalidParameters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rc.yaml")
	if err := os.WriteFile(path, []byte("resistance: -10.0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var perr *circuit.InvalidParameterError
	if !errors.As(err, &perr) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("medium")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.EMF != 10.0 || cfg.Resistance != 1000.0 || cfg.Capacitance != 100.0 {
		t.Errorf("medium preset mismatch: %+v", cfg)
	}
	if !cfg.SwitchClosed {
		t.Error("medium preset should close the switch")
	}

	// GetPreset returns a copy; mutation must not leak back.
	cfg.EMF = 999
	if Presets["medium"].EMF != 10.0 {
		t.Error("preset table mutated through returned copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(PresetOrder) {
		t.Fatalf("expected %d presets, got %d", len(PresetOrder), len(names))
	}
	for _, name := range PresetOrder {
		if GetPreset(name) == nil {
			t.Errorf("preset order names missing preset %q", name)
		}
	}
}

func TestApply(t *testing.T) {
	s := circuit.New()
	cfg := GetPreset("high")
	if err := cfg.Apply(s); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if s.Resistance != 5000.0 || s.Capacitance != 1000.0 || s.EMF != 20.0 {
		t.Errorf("apply mismatch: %+v", s)
	}
}
