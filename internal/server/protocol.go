package server

import (
	"fmt"

	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/sandbox"
)

// Client commands.
const (
	CmdMount   = "mount"
	CmdReset   = "reset"
	CmdSpawn   = "spawn"
	CmdClear   = "clear"
	CmdGravity = "gravity"
)

// Server frames.
const (
	FrameSample = "sample"
	FrameStatus = "status"
)

const (
	StatusLoading = "loading"
	StatusReady   = "ready"
	StatusError   = "error"
)

type Command struct {
	Type     string             `json:"type"`
	Variant  string             `json:"variant,omitempty"`
	Params   map[string]float64 `json:"params,omitempty"`
	ConfigID string             `json:"config_id,omitempty"`
	Shape    string             `json:"shape,omitempty"`
	Mass     float64            `json:"mass,omitempty"`
	Color    string             `json:"color,omitempty"`
	On       bool               `json:"on,omitempty"`
}

type BodyFrame struct {
	ID       uint64     `json:"id"`
	Shape    string     `json:"shape"`
	Color    string     `json:"color"`
	Position [3]float64 `json:"position"`
	Angle    float64    `json:"angle"`
}

type Frame struct {
	Type     string             `json:"type"`
	Session  string             `json:"session,omitempty"`
	Step     int                `json:"step,omitempty"`
	Time     float64            `json:"time,omitempty"`
	Position *[3]float64        `json:"position,omitempty"`
	Readout  map[string]float64 `json:"readout,omitempty"`
	Energy   float64            `json:"energy,omitempty"`
	Bodies   []BodyFrame        `json:"bodies,omitempty"`
	Terminal bool               `json:"terminal,omitempty"`
	Status   string             `json:"status,omitempty"`
	Error    string             `json:"error,omitempty"`
}

func sampleFrame(session string, s dynamo.Sample) Frame {
	pos := [3]float64{s.Position.X(), s.Position.Y(), s.Position.Z()}
	f := Frame{
		Type:     FrameSample,
		Session:  session,
		Step:     s.Step,
		Time:     s.Time,
		Position: &pos,
		Energy:   s.Energy,
		Terminal: s.Terminal,
	}
	if s.Readout != nil {
		f.Readout = s.Readout.Values()
	}
	for _, b := range s.Bodies {
		f.Bodies = append(f.Bodies, BodyFrame{
			ID:       b.ID,
			Shape:    b.Shape.String(),
			Color:    b.Color,
			Position: [3]float64{b.Position.X(), b.Position.Y(), b.Position.Z()},
			Angle:    b.Angle,
		})
	}
	return f
}

func statusFrame(session, status string, err error) Frame {
	f := Frame{Type: FrameStatus, Session: session, Status: status}
	if err != nil {
		f.Error = err.Error()
	}
	return f
}

// mountParams builds the parameters for a mount command: variant defaults
// overridden by the named fields. Values are normalized later by the host.
func mountParams(cmd Command) (params.Parameters, error) {
	v, err := params.ParseVariant(cmd.Variant)
	if err != nil {
		return nil, err
	}
	if v == params.VariantSandbox {
		id := cmd.ConfigID
		if id == "" {
			id = sandbox.DefaultConfigID
		}
		return params.Sandbox{ConfigID: id}, nil
	}

	p, err := params.Defaults(v)
	if err != nil {
		return nil, err
	}
	for name, value := range cmd.Params {
		if p, err = params.Set(p, name, value); err != nil {
			return nil, fmt.Errorf("mount %v: %w", v, err)
		}
	}
	return p, nil
}
