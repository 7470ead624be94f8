package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var sampleHeader = []string{"step", "time", "x", "y", "z", "theta", "phi", "energy", "terminal"}

// Store keeps recorded runs under <data>/runs and sandbox configurations
// under <data>/sandbox.
type Store struct {
	baseDir string
}

func New(dataDir string) *Store {
	return &Store{baseDir: dataDir}
}

func (s *Store) runsDir() string { return filepath.Join(s.baseDir, "runs") }

func (s *Store) Init() error {
	if err := os.MkdirAll(s.runsDir(), 0755); err != nil {
		return err
	}
	return os.MkdirAll(s.sandboxDir(), 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Variant    string             `json:"variant"`
	Timestamp  time.Time          `json:"timestamp"`
	Params     map[string]float64 `json:"params"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Integrator string             `json:"integrator,omitempty"`
	Terminal   bool               `json:"terminal"`
	Metrics    map[string]float64 `json:"metrics"`
}

type RunInfo struct {
	Params     params.Parameters
	Dt         float64
	Integrator string
}

func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	if info.Params == nil {
		return "", fmt.Errorf("save run: %w", dynamo.ErrUnknownVariant)
	}
	variant := info.Params.Variant().String()
	runID := fmt.Sprintf("%s_%s", variant, uuid.NewString()[:8])
	runDir := filepath.Join(s.runsDir(), runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	values := make(map[string]float64)
	for _, f := range params.Fields(info.Params) {
		values[f.Name] = f.Value
	}
	meta := RunMetadata{
		ID:         runID,
		Variant:    variant,
		Timestamp:  time.Now(),
		Params:     values,
		Dt:         info.Dt,
		Steps:      result.StepsTaken,
		Integrator: info.Integrator,
		Terminal:   result.Terminal,
		Metrics:    result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), result.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, samples []dynamo.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(sampleHeader); err != nil {
		return err
	}
	for _, s := range samples {
		var theta, phi float64
		if a, ok := s.Readout.(dynamo.AngleReadout); ok {
			theta, phi = a.Theta, a.Phi
		}
		row := []string{
			strconv.Itoa(s.Step),
			formatFloat(s.Time),
			formatFloat(s.Position.X()),
			formatFloat(s.Position.Y()),
			formatFloat(s.Position.Z()),
			formatFloat(theta),
			formatFloat(phi),
			formatFloat(s.Energy),
			strconv.FormatBool(s.Terminal),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.runsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.runsDir(), runID, metadataFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("run %q: %w", runID, dynamo.ErrNotFound)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %q metadata: %w", runID, err)
	}
	return &meta, nil
}

// LoadSamples reads a run's samples back. Pendulum runs carry an angle
// readout, every other variant a position readout.
func (s *Store) LoadSamples(runID string) ([]dynamo.Sample, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(s.runsDir(), runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []dynamo.Sample{}, nil
	}

	angular := meta.Variant == params.VariantPendulum.String()
	samples := make([]dynamo.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < len(sampleHeader) {
			continue
		}
		vals := make([]float64, 8)
		ok := true
		for j := 1; j < 8; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		step, err := strconv.Atoi(record[0])
		if !ok || err != nil {
			continue
		}
		terminal, _ := strconv.ParseBool(record[8])

		pos := mgl64.Vec3{vals[2], vals[3], vals[4]}
		sample := dynamo.Sample{Step: step, Time: vals[1], Position: pos, Energy: vals[7], Terminal: terminal}
		if angular {
			sample.Readout = dynamo.AngleReadout{Theta: vals[5], Phi: vals[6]}
		} else {
			sample.Readout = dynamo.PositionReadout{X: pos.X(), Y: pos.Y(), Z: pos.Z()}
		}
		samples = append(samples, sample)
	}
	return samples, nil
}
