package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/sandbox"
)

var configIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

func (s *Store) sandboxDir() string { return filepath.Join(s.baseDir, "sandbox") }

func (s *Store) configPath(id string) (string, error) {
	if !configIDPattern.MatchString(id) {
		return "", fmt.Errorf("config id %q: %w", id, dynamo.ErrNotFound)
	}
	return filepath.Join(s.sandboxDir(), id+".json"), nil
}

// SaveConfig validates and writes a sandbox configuration.
func (s *Store) SaveConfig(id string, cfg sandbox.SavedConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	path, err := s.configPath(id)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.sandboxDir(), 0755); err != nil {
		return err
	}
	cfg.Color, _ = sandbox.NormalizeColor(cfg.Color)
	return writeJSON(path, cfg)
}

// LoadConfig reads a saved configuration. A missing file is ErrNotFound.
func (s *Store) LoadConfig(ctx context.Context, id string) (sandbox.SavedConfig, error) {
	if err := ctx.Err(); err != nil {
		return sandbox.SavedConfig{}, err
	}
	path, err := s.configPath(id)
	if err != nil {
		return sandbox.SavedConfig{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return sandbox.SavedConfig{}, fmt.Errorf("config %q: %w", id, dynamo.ErrNotFound)
		}
		return sandbox.SavedConfig{}, err
	}

	var cfg sandbox.SavedConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return sandbox.SavedConfig{}, fmt.Errorf("config %q: %w", id, err)
	}
	return cfg, nil
}

func (s *Store) ListConfigs() ([]string, error) {
	entries, err := os.ReadDir(s.sandboxDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".json"); ok && !e.IsDir() {
			ids = append(ids, name)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Configs adapts the store to sandbox.ConfigSource.
func (s *Store) Configs() sandbox.ConfigSource { return configSource{s} }

type configSource struct{ s *Store }

func (c configSource) Load(ctx context.Context, id string) (sandbox.SavedConfig, error) {
	return c.s.LoadConfig(ctx, id)
}
