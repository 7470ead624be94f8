package sandbox

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
	"github.com/san-kum/quanticle/internal/dynamo"
)

const (
	DefaultToolColor = "#7b61ff"

	toolMassStep = 0.5
	toolMassMin  = 0.5
	toolMassMax  = 50
	toolHueStep  = 45
)

// Toolbox is the spawn tool a host edits between spawns. It is independent of
// the saved config, which only seeds SpawnDefault.
type Toolbox struct {
	Shape dynamo.Shape
	Mass  float64
	Color string
}

func DefaultToolbox() Toolbox {
	return Toolbox{Shape: dynamo.ShapeBox, Mass: 1, Color: DefaultToolColor}
}

// NudgeMass moves the mass by delta steps, kept inside the tool's range.
func (t Toolbox) NudgeMass(delta int) Toolbox {
	t.Mass = lo.Clamp(t.Mass+float64(delta)*toolMassStep, toolMassMin, toolMassMax)
	return t
}

// NextColor rotates the hue of the tool color. Grey colors have no hue and
// jump to the default instead.
func (t Toolbox) NextColor() Toolbox {
	c, err := colorful.Hex(t.Color)
	if err != nil {
		t.Color = DefaultToolColor
		return t
	}
	h, s, l := c.Hsl()
	if s < 1e-3 {
		t.Color = DefaultToolColor
		return t
	}
	t.Color = colorful.Hsl(math.Mod(h+toolHueStep, 360), s, l).Clamped().Hex()
	return t
}

// SpawnTool spawns one body with the tool's shape, mass and color.
func (c *Controller) SpawnTool(t Toolbox) (uint64, error) {
	return c.Spawn(t.Shape, t.Mass, t.Color)
}
