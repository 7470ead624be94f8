package metrics

import (
	"math"

	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/sim"
)

type PeakHeight struct {
	peak float64
}

func NewPeakHeight() *PeakHeight { return &PeakHeight{} }

func (p *PeakHeight) Name() string { return "peak_height" }

func (p *PeakHeight) Observe(s dynamo.Sample) {
	p.peak = math.Max(p.peak, s.Position.Y())
}

func (p *PeakHeight) Value() float64 { return p.peak }

func (p *PeakHeight) Reset() { p.peak = 0 }

// Range is the horizontal distance from the origin of the latest sample.
type Range struct {
	last float64
}

func NewRange() *Range { return &Range{} }

func (r *Range) Name() string { return "range" }

func (r *Range) Observe(s dynamo.Sample) {
	r.last = math.Hypot(s.Position.X(), s.Position.Z())
}

func (r *Range) Value() float64 { return r.last }

func (r *Range) Reset() { r.last = 0 }

type MaxAngle struct {
	max float64
}

func NewMaxAngle() *MaxAngle { return &MaxAngle{} }

func (m *MaxAngle) Name() string { return "max_angle" }

func (m *MaxAngle) Observe(s dynamo.Sample) {
	if a, ok := s.Readout.(dynamo.AngleReadout); ok {
		m.max = math.Max(m.max, math.Abs(a.Theta))
	}
}

func (m *MaxAngle) Value() float64 { return m.max }

func (m *MaxAngle) Reset() { m.max = 0 }

// Extent is the largest |coordinate| seen on one axis (0, 1 or 2).
type Extent struct {
	axis int
	max  float64
}

func NewExtent(axis int) *Extent { return &Extent{axis: axis} }

func (e *Extent) Name() string { return "extent_" + string("xyz"[e.axis]) }

func (e *Extent) Observe(s dynamo.Sample) {
	e.max = math.Max(e.max, math.Abs(s.Position[e.axis]))
}

func (e *Extent) Value() float64 { return e.max }

func (e *Extent) Reset() { e.max = 0 }

type PathLength struct {
	sum  float64
	prev dynamo.Sample
	seen bool
}

func NewPathLength() *PathLength { return &PathLength{} }

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) Observe(s dynamo.Sample) {
	if p.seen {
		p.sum += s.Position.Sub(p.prev.Position).Len()
	}
	p.prev, p.seen = s, true
}

func (p *PathLength) Value() float64 { return p.sum }

func (p *PathLength) Reset() {
	p.sum = 0
	p.seen = false
}

// ForVariant returns the metrics recorded for a run of v.
func ForVariant(v params.Variant) []sim.Metric {
	switch v {
	case params.VariantProjectile:
		return []sim.Metric{NewPeakHeight(), NewRange(), NewPathLength()}
	case params.VariantPendulum:
		return []sim.Metric{NewMaxAngle(), NewEnergy(), NewEnergyDrift()}
	case params.VariantSHM:
		return []sim.Metric{NewExtent(0), NewExtent(1), NewExtent(2), NewPathLength()}
	default:
		return nil
	}
}

// ForParams is ForVariant plus the metrics that need the run parameters.
// SHM runs also record the fraction of samples inside the amplitude box.
func ForParams(p params.Parameters) []sim.Metric {
	if p == nil {
		return nil
	}
	ms := ForVariant(p.Variant())
	if shm, ok := p.(params.SHM); ok {
		ms = append(ms, NewStability(shm.Amplitude+1e-9))
	}
	return ms
}
