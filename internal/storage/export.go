package storage

import (
	"encoding/json"
	"io"
)

type ExportedSample struct {
	Step     int        `json:"step"`
	Time     float64    `json:"time"`
	Position [3]float64 `json:"position"`
	Readout  any        `json:"readout,omitempty"`
	Energy   float64    `json:"energy"`
	Terminal bool       `json:"terminal,omitempty"`
}

type ExportData struct {
	RunMetadata
	Samples []ExportedSample `json:"samples"`
}

// ExportJSON writes a run's metadata and samples as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	data := ExportData{RunMetadata: *meta, Samples: make([]ExportedSample, len(samples))}
	for i, smp := range samples {
		data.Samples[i] = ExportedSample{
			Step:     smp.Step,
			Time:     smp.Time,
			Position: smp.Position,
			Energy:   smp.Energy,
			Terminal: smp.Terminal,
		}
		if smp.Readout != nil {
			data.Samples[i].Readout = smp.Readout.Values()
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
