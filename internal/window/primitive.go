package window

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/quanticle/internal/scene"
	"github.com/san-kum/quanticle/internal/viz"
)

type PrimitiveKind int

const (
	PrimSphere PrimitiveKind = iota
	PrimSegment
)

type RGBA struct{ R, G, B, A uint8 }

// Primitive is one raylib draw call. Spheres use A and Radius; segments run
// from A to B.
type Primitive struct {
	Kind   PrimitiveKind
	A, B   mgl64.Vec3
	Radius float64
	Color  RGBA
}

// Primitives flattens a scene into spheres and segments in draw order. Boxes
// and ground planes become their wireframe edges.
func Primitives(s *scene.Scene) []Primitive {
	var out []Primitive
	for _, n := range s.Nodes() {
		col := Color(viz.Shade(n.Color, s.Lights))
		if n.Kind == scene.KindSphere {
			out = append(out, Primitive{Kind: PrimSphere, A: n.Position, Radius: n.Size, Color: col})
			continue
		}
		w := viz.NewWireframe()
		w.AddNode(n, n.Color)
		for _, e := range w.Edges {
			out = append(out, Primitive{Kind: PrimSegment, A: e.Start, B: e.End, Color: col})
		}
	}
	return out
}

// Color parses #rrggbb. Anything else draws opaque white.
func Color(hex string) RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGBA{255, 255, 255, 255}
	}
	r, g, b := c.Clamped().RGB255()
	return RGBA{r, g, b, 255}
}
