package scene

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
)

type Kind int

const (
	KindSphere Kind = iota
	KindBox
	KindLine
	KindPlane
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindBox:
		return "box"
	case KindLine:
		return "line"
	case KindPlane:
		return "plane"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is one drawable. Size is the radius of a sphere, the edge of a box and
// the side of a ground plane; End is only used by lines.
type Node struct {
	Name     string
	Kind     Kind
	Position mgl64.Vec3
	End      mgl64.Vec3
	Size     float64
	Angle    float64
	Color    string
}

type LightKind int

const (
	Ambient LightKind = iota
	Directional
)

type Light struct {
	Kind      LightKind
	Position  mgl64.Vec3
	Intensity float64
	Color     string
}

// Scene is the composed graph handed to a Surface. Nodes draw in insertion
// order.
type Scene struct {
	Camera Camera
	Lights []Light
	nodes  *orderedmap.OrderedMap[string, *Node]
}

func newScene(cam Camera) *Scene {
	return &Scene{Camera: cam, nodes: orderedmap.NewOrderedMap[string, *Node]()}
}

func (s *Scene) Add(n *Node) {
	s.nodes.Set(n.Name, n)
}

func (s *Scene) Node(name string) (*Node, bool) {
	return s.nodes.Get(name)
}

func (s *Scene) Remove(name string) bool {
	return s.nodes.Delete(name)
}

func (s *Scene) Len() int { return s.nodes.Len() }

// Nodes returns the nodes in draw order.
func (s *Scene) Nodes() []*Node {
	out := make([]*Node, 0, s.nodes.Len())
	for _, k := range s.nodes.Keys() {
		n, _ := s.nodes.Get(k)
		out = append(out, n)
	}
	return out
}

func (s *Scene) clear() {
	s.nodes = orderedmap.NewOrderedMap[string, *Node]()
	s.Lights = nil
}
