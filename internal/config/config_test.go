package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/icrf-tools/icrlab/internal/plasma"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Device.CoilCurrent != DefaultCurrent {
		t.Errorf("expected current %g, got %g", DefaultCurrent, cfg.Device.CoilCurrent)
	}
	if cfg.Wave.Frequency != DefaultFrequency {
		t.Errorf("expected frequency %g, got %g", DefaultFrequency, cfg.Wave.Frequency)
	}
	if cfg.Harmonic != 1 {
		t.Errorf("expected harmonic 1, got %d", cfg.Harmonic)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icrlab.yaml")
	body := []byte("device:\n  coil_current: 2000\nwave:\n  frequency: 42e6\nion:\n  species: D\nharmonic: 2\n")
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Device.CoilCurrent != 2000 {
		t.Errorf("expected current 2000, got %g", cfg.Device.CoilCurrent)
	}
	if cfg.Wave.Frequency != 42e6 {
		t.Errorf("expected frequency 42e6, got %g", cfg.Wave.Frequency)
	}
	if cfg.Ion.Species != "D" {
		t.Errorf("expected species D, got %s", cfg.Ion.Species)
	}
	// untouched keys keep defaults
	if cfg.Device.RMax != DefaultRMax {
		t.Errorf("expected default r_max %g, got %g", DefaultRMax, cfg.Device.RMax)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")

	cfg := DefaultConfig()
	cfg.Device.CoilCurrent = 900
	cfg.Ion = IonConfig{Z: 2, A: 3}
	cfg.Ion.Species = ""

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Device.CoilCurrent != 900 || got.Ion.Z != 2 || got.Ion.A != 3 {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestResolveIon(t *testing.T) {
	cfg := DefaultConfig()
	ion, err := cfg.ResolveIon()
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if ion.Z != 1 || ion.A != 1 {
		t.Errorf("expected hydrogen, got %+v", ion)
	}

	cfg.Ion = IonConfig{Z: 1, A: 2}
	ion, err = cfg.ResolveIon()
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if ion.A != 2 {
		t.Errorf("expected deuterium, got %+v", ion)
	}

	cfg.Ion = IonConfig{Z: 3, A: 1}
	if _, err := cfg.ResolveIon(); !errors.Is(err, plasma.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("no presets registered")
	}

	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s listed but not gettable", name)
		}
		if _, err := cfg.ResolveIon(); err != nil {
			t.Errorf("preset %s has invalid ion: %v", name, err)
		}
		if cfg.Harmonic < 1 {
			t.Errorf("preset %s has invalid harmonic %d", name, cfg.Harmonic)
		}
	}

	if GetPreset("no-such-preset") != nil {
		t.Error("expected nil for unknown preset")
	}
}
