package viz

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
	"github.com/san-kum/quanticle/internal/scene"
)

// BrailleSurface is the terminal graphics context: each Draw rasterizes the
// scene onto a braille canvas that the host prints.
type BrailleSurface struct {
	canvas   *Canvas
	frame    string
	draws    int
	released bool
}

func NewBrailleSurface(w, h int) *BrailleSurface {
	return &BrailleSurface{canvas: NewCanvas(w, h)}
}

// BrailleFactory returns a factory for w x h cell surfaces. onCreate, when
// set, receives each surface so the host can print its frames.
func BrailleFactory(w, h int, onCreate func(*BrailleSurface)) scene.SurfaceFactory {
	return func() (scene.Surface, error) {
		s := NewBrailleSurface(w, h)
		if onCreate != nil {
			onCreate(s)
		}
		return s, nil
	}
}

func (b *BrailleSurface) Draw(s *scene.Scene) error {
	if b.released {
		return scene.ErrDisposed
	}
	c := b.canvas
	c.Clear()
	cw, ch := c.PixelSize()

	w := NewWireframe()
	var spheres []*scene.Node
	for _, n := range s.Nodes() {
		if n.Kind == scene.KindSphere {
			spheres = append(spheres, n)
			continue
		}
		w.AddNode(n, Shade(n.Color, s.Lights))
	}
	Render3D(c, w, s.Camera)

	for _, n := range spheres {
		x, y, r, ok := projectedRadius(s.Camera, n.Position, n.Size, cw, ch)
		if !ok {
			continue
		}
		c.SetPen(Shade(n.Color, s.Lights))
		c.DrawCircle(x, y, lo.Clamp(r, 0, ch/4))
	}
	c.SetPen("")

	b.frame = c.String()
	b.draws++
	return nil
}

func (b *BrailleSurface) Release() {
	b.released = true
	b.canvas = nil
}

// Frame is the last drawn frame.
func (b *BrailleSurface) Frame() string { return b.frame }

func (b *BrailleSurface) Draws() int { return b.draws }

func (b *BrailleSurface) Released() bool { return b.released }

// Shade darkens a material color by the scene lighting. Ambient lights add
// their intensity scaled by their own luminance; directional lights add a
// fixed half of theirs.
func Shade(hex string, lights []scene.Light) string {
	base, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	level := 0.0
	for _, l := range lights {
		switch l.Kind {
		case scene.Ambient:
			lum := 1.0
			if c, err := colorful.Hex(l.Color); err == nil {
				_, _, lum = c.Hsl()
			}
			level += l.Intensity * lum
		case scene.Directional:
			level += 0.5 * l.Intensity
		}
	}
	level = lo.Clamp(level, 0.35, 1)
	black := colorful.Color{}
	return base.BlendLab(black, 1-level).Clamped().Hex()
}
