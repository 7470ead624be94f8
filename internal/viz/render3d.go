package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/quanticle/internal/scene"
)

type Edge struct {
	Start, End mgl64.Vec3
	Color      string
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe { return &Wireframe{Edges: make([]Edge, 0)} }

func (w *Wireframe) AddEdge(s, e mgl64.Vec3, color string) {
	w.Edges = append(w.Edges, Edge{s, e, color})
}

func (w *Wireframe) AddPoint(p mgl64.Vec3, color string) {
	w.Edges = append(w.Edges, Edge{p, p, color})
}

func (w *Wireframe) Clear() { w.Edges = w.Edges[:0] }

// AddNode appends the outline of a scene node. Spheres are left to the
// caller, which fills them as discs.
func (w *Wireframe) AddNode(n *scene.Node, color string) {
	switch n.Kind {
	case scene.KindLine:
		w.AddEdge(n.Position, n.End, color)
	case scene.KindBox:
		w.addBox(n.Position, n.Size, n.Angle, color)
	case scene.KindPlane:
		w.addGrid(n.Position, n.Size, color)
	}
}

func (w *Wireframe) addBox(center mgl64.Vec3, size, angle float64, color string) {
	s := size / 2
	rot := mgl64.Rotate3DZ(angle)
	v := []mgl64.Vec3{{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s}, {-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s}}
	for i := range v {
		v[i] = center.Add(rot.Mul3x1(v[i]))
	}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]], color)
	}
}

// addGrid lays a square grid on the y = center.Y plane. Lines are split so a
// partly visible line still draws.
func (w *Wireframe) addGrid(center mgl64.Vec3, size float64, color string) {
	const lines, pieces = 11, 16
	h := size / 2
	for i := 0; i < lines; i++ {
		off := -h + size*float64(i)/float64(lines-1)
		for k := 0; k < pieces; k++ {
			a := -h + size*float64(k)/pieces
			b := -h + size*float64(k+1)/pieces
			w.AddEdge(center.Add(mgl64.Vec3{off, 0, a}), center.Add(mgl64.Vec3{off, 0, b}), color)
			w.AddEdge(center.Add(mgl64.Vec3{a, 0, off}), center.Add(mgl64.Vec3{b, 0, off}), color)
		}
	}
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
	color          string
}

// Render3D projects the wireframe through cam and draws it far to near.
// Edges with an endpoint outside the frustum are dropped.
func Render3D(c *Canvas, w *Wireframe, cam scene.Camera) {
	if c == nil || w == nil {
		return
	}
	cw, ch := c.PixelSize()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, cw, ch)
		x2, y2, d2, v2 := cam.Project(e.End, cw, ch)
		if v1 && v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2, e.Color})
		}
	}
	sort.SliceStable(proj, func(i, j int) bool { return proj[i].depth > proj[j].depth })
	for _, e := range proj {
		c.SetPen(e.color)
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
	c.SetPen("")
}

// projectedRadius is the on-screen radius of a sphere of radius r at p.
func projectedRadius(cam scene.Camera, p mgl64.Vec3, r float64, cw, ch int) (int, int, int, bool) {
	x, y, _, ok := cam.Project(p, cw, ch)
	if !ok {
		return 0, 0, 0, false
	}
	right := cam.Eye.Sub(cam.Target).Cross(cam.Up)
	if right.Len() == 0 {
		right = mgl64.Vec3{1, 0, 0}
	}
	edge := p.Add(right.Normalize().Mul(r))
	ex, ey, _, _ := cam.Project(edge, cw, ch)
	pr := int(math.Round(math.Hypot(float64(ex-x), float64(ey-y))))
	return x, y, pr, true
}
