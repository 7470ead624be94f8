package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/quanticle/internal/params"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if cfg.Integrator != "symplectic" {
		t.Errorf("expected symplectic integrator, got %s", cfg.Integrator)
	}
	policy, err := cfg.ValidationPolicy()
	if err != nil || policy != params.Clamp {
		t.Errorf("policy = %v, %v", policy, err)
	}
	p, _ := cfg.Params(params.VariantProjectile)
	if p != (params.Projectile{AngleXY: 45, AngleZ: 0, Speed: 10}) {
		t.Errorf("projectile defaults = %+v", p)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "quanticle.yaml")
	cfg := DefaultConfig()
	cfg.Pendulum.Length = 3.5
	cfg.Policy = "reject"
	cfg.Server.TickInterval = 40 * time.Millisecond

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Pendulum.Length != 3.5 || loaded.Server.TickInterval != 40*time.Millisecond {
		t.Errorf("loaded = %+v", loaded)
	}
	if policy, _ := loaded.ValidationPolicy(); policy != params.Reject {
		t.Errorf("policy = %v", policy)
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != DefaultFPS {
		t.Errorf("fps = %d", cfg.FPS)
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("pendulum", "long")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.(params.Pendulum).Length != 5 {
		t.Errorf("expected length 5, got %+v", p)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("pendulum", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "small") != nil {
		t.Error("expected nil for nonexistent variant")
	}
}

func TestPresetsAreInRange(t *testing.T) {
	for variant, presets := range Presets {
		for name, p := range presets {
			if _, err := params.Normalize(p, params.Reject); err != nil {
				t.Errorf("%s/%s: %v", variant, name, err)
			}
		}
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("shm")
	if len(presets) != 4 || presets[0] != "default" {
		t.Errorf("presets = %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent variant")
	}
}
