package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/quanticle/internal/params"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS          = 50
	DefaultAddr         = "127.0.0.1:8089"
	DefaultTickInterval = 20 * time.Millisecond
	DefaultSteps        = 1500
)

type Config struct {
	DataDir    string            `yaml:"data_dir"`
	LogLevel   string            `yaml:"log_level"`
	LogFile    string            `yaml:"log_file"`
	FPS        int               `yaml:"fps"`
	Policy     string            `yaml:"policy"`
	Theme      string            `yaml:"theme"`
	Integrator string            `yaml:"integrator"`
	Steps      int               `yaml:"steps"`
	Projectile params.Projectile `yaml:"projectile"`
	Pendulum   params.Pendulum   `yaml:"pendulum"`
	SHM        params.SHM        `yaml:"shm"`
	Server     ServerConfig      `yaml:"server"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	TickInterval time.Duration `yaml:"tick_interval"`
	SentryDSN    string        `yaml:"sentry_dsn"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:    defaultDataDir(),
		LogLevel:   "info",
		FPS:        DefaultFPS,
		Policy:     params.Clamp.String(),
		Theme:      "cyberpunk",
		Integrator: "symplectic",
		Steps:      DefaultSteps,
		Projectile: params.Projectile{AngleXY: 45, AngleZ: 0, Speed: 10},
		Pendulum:   params.Pendulum{Length: 2, Mass: 1},
		SHM:        params.SHM{Amplitude: 2, Frequency: 0.5},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			TickInterval: DefaultTickInterval,
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quanticle"
	}
	return filepath.Join(home, ".quanticle")
}

// Load reads a YAML file over the defaults. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params returns the configured starting parameters for v.
func (c *Config) Params(v params.Variant) (params.Parameters, error) {
	switch v {
	case params.VariantProjectile:
		return c.Projectile, nil
	case params.VariantPendulum:
		return c.Pendulum, nil
	case params.VariantSHM:
		return c.SHM, nil
	default:
		return params.Defaults(v)
	}
}

func (c *Config) ValidationPolicy() (params.Policy, error) {
	return params.ParsePolicy(c.Policy)
}
