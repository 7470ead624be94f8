package config

import (
	"sort"

	"github.com/san-kum/quanticle/internal/params"
)

var Presets = map[string]map[string]params.Parameters{
	"projectile": {
		"lob":     params.Projectile{AngleXY: 75, AngleZ: 0, Speed: 15},
		"flat":    params.Projectile{AngleXY: 10, AngleZ: 0, Speed: 30},
		"max":     params.Projectile{AngleXY: 45, AngleZ: 0, Speed: 50},
		"skewed":  params.Projectile{AngleXY: 45, AngleZ: 30, Speed: 20},
		"default": params.Projectile{AngleXY: 45, AngleZ: 0, Speed: 10},
	},
	"pendulum": {
		"short":   params.Pendulum{Length: 0.5, Mass: 1},
		"long":    params.Pendulum{Length: 5, Mass: 1},
		"heavy":   params.Pendulum{Length: 2, Mass: 5},
		"default": params.Pendulum{Length: 2, Mass: 1},
	},
	"shm": {
		"slow":    params.SHM{Amplitude: 2, Frequency: 0.1},
		"fast":    params.SHM{Amplitude: 1, Frequency: 2},
		"wide":    params.SHM{Amplitude: 5, Frequency: 0.5},
		"default": params.SHM{Amplitude: 2, Frequency: 0.5},
	},
}

func GetPreset(variant, preset string) params.Parameters {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	p, ok := variantPresets[preset]
	if !ok {
		return nil
	}
	return p
}

func ListPresets(variant string) []string {
	variantPresets, ok := Presets[variant]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variantPresets))
	for name := range variantPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
