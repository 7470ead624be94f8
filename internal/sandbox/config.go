package sandbox

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/quanticle/internal/dynamo"
)

const DefaultConfigID = "default"

// SavedConfig is the persisted sandbox configuration.
type SavedConfig struct {
	Shape   dynamo.Shape `json:"shape" yaml:"shape"`
	Mass    float64      `json:"mass" yaml:"mass"`
	Gravity bool         `json:"gravity" yaml:"gravity"`
	Color   string       `json:"color" yaml:"color"`
}

func DefaultConfig() SavedConfig {
	return SavedConfig{Shape: dynamo.ShapeBox, Mass: 1, Gravity: true, Color: "#ff8800"}
}

func (c SavedConfig) Validate() error {
	if c.Shape != dynamo.ShapeBox && c.Shape != dynamo.ShapeSphere {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidShape, c.Shape)
	}
	if err := ValidateMass(c.Mass); err != nil {
		return err
	}
	if _, err := NormalizeColor(c.Color); err != nil {
		return err
	}
	return nil
}

func ValidateMass(m float64) error {
	if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
		return fmt.Errorf("%w: %v", dynamo.ErrInvalidMass, m)
	}
	return nil
}

// NormalizeColor accepts only #rrggbb and returns it lowercased.
func NormalizeColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return "", fmt.Errorf("%w: %q", dynamo.ErrInvalidColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", dynamo.ErrInvalidColor, s)
	}
	return c.Hex(), nil
}

type ConfigSource interface {
	Load(ctx context.Context, id string) (SavedConfig, error)
}

// LoadOrDefault loads id from src; the default id falls back to
// DefaultConfig when nothing has been saved under it.
func LoadOrDefault(ctx context.Context, src ConfigSource, id string) (SavedConfig, error) {
	if id == "" {
		id = DefaultConfigID
	}
	cfg, err := src.Load(ctx, id)
	if errors.Is(err, dynamo.ErrNotFound) && id == DefaultConfigID {
		return DefaultConfig(), nil
	}
	if err != nil {
		return SavedConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return SavedConfig{}, fmt.Errorf("config %q: %w", id, err)
	}
	return cfg, nil
}

type Loaded struct {
	ID     string
	Config SavedConfig
	Err    error
}

// LoadAsync runs LoadOrDefault on its own goroutine and delivers exactly one
// result.
func LoadAsync(ctx context.Context, src ConfigSource, id string) <-chan Loaded {
	out := make(chan Loaded, 1)
	go func() {
		cfg, err := LoadOrDefault(ctx, src, id)
		out <- Loaded{ID: id, Config: cfg, Err: err}
	}()
	return out
}
