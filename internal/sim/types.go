package sim

import "github.com/san-kum/quanticle/internal/dynamo"

// Metric folds a stream of samples into one number.
type Metric interface {
	Name() string
	Observe(s dynamo.Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnSample(s dynamo.Sample)
}

type ObserverFunc func(dynamo.Sample)

func (f ObserverFunc) OnSample(s dynamo.Sample) { f(s) }

// RunConfig bounds a headless run. A run stops at Steps samples or at the
// first terminal sample, whichever comes first.
type RunConfig struct {
	Steps         int
	ValidateState bool
}

type Result struct {
	Samples    []dynamo.Sample
	Metrics    map[string]float64
	StepsTaken int
	Terminal   bool
}
