package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/quanticle/internal/dynamo"
)

// FormatReadout renders a readout for display: meters to two decimals,
// angles converted to degrees.
func FormatReadout(r dynamo.Readout) [][2]string {
	switch r := r.(type) {
	case dynamo.PositionReadout:
		return [][2]string{
			{"x", fmt.Sprintf("%.2f m", r.X)},
			{"y", fmt.Sprintf("%.2f m", r.Y)},
			{"z", fmt.Sprintf("%.2f m", r.Z)},
		}
	case dynamo.AngleReadout:
		return [][2]string{
			{"θ", fmt.Sprintf("%.2f°", degrees(r.Theta))},
			{"φ", fmt.Sprintf("%.2f°", degrees(r.Phi))},
		}
	case dynamo.BodyCountReadout:
		return [][2]string{{"bodies", fmt.Sprintf("%d", r.Count)}}
	default:
		return nil
	}
}

// traceValue is the scalar plotted under the readout.
func traceValue(s dynamo.Sample) float64 {
	switch r := s.Readout.(type) {
	case dynamo.AngleReadout:
		return degrees(r.Theta)
	case dynamo.BodyCountReadout:
		return float64(r.Count)
	default:
		return s.Position.Y()
	}
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
