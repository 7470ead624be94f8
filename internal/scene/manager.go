package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/params"
	"go.uber.org/zap"
)

var ErrDisposed = errors.New("scene disposed")

// Manager creates scenes on surfaces from its factory and tracks how many
// are still live.
type Manager struct {
	factory SurfaceFactory
	log     *zap.Logger
	live    int
}

func NewManager(factory SurfaceFactory, log *zap.Logger) *Manager {
	if factory == nil {
		factory = NullFactory()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{factory: factory, log: log}
}

// Create acquires a surface and composes the scene for p. On failure nothing
// is left allocated.
func (m *Manager) Create(p params.Parameters) (*Handle, error) {
	if p == nil {
		return nil, fmt.Errorf("create scene: %w", dynamo.ErrUnknownVariant)
	}
	surface, err := m.factory()
	if err != nil {
		return nil, fmt.Errorf("acquire surface: %w", err)
	}
	s, err := compose(p)
	if err != nil {
		surface.Release()
		return nil, fmt.Errorf("compose %v scene: %w", p.Variant(), err)
	}
	m.live++
	m.log.Debug("scene created", zap.Stringer("variant", p.Variant()), zap.Int("nodes", s.Len()))
	return &Handle{mgr: m, variant: p.Variant(), scene: s, surface: surface}, nil
}

// Live returns the number of handles not yet disposed.
func (m *Manager) Live() int { return m.live }

type Handle struct {
	mgr      *Manager
	variant  params.Variant
	scene    *Scene
	surface  Surface
	disposed bool
}

func (h *Handle) Variant() params.Variant { return h.variant }

func (h *Handle) Scene() *Scene { return h.scene }

func (h *Handle) Disposed() bool { return h.disposed }

// Apply moves the scene geometry to match a sample.
func (h *Handle) Apply(s dynamo.Sample) {
	if h.disposed {
		return
	}
	switch h.variant {
	case params.VariantProjectile, params.VariantSHM:
		if n, ok := h.scene.Node(NodeBody); ok {
			n.Position = s.Position
		}
	case params.VariantPendulum:
		if n, ok := h.scene.Node(NodeBob); ok {
			n.Position = s.Position
		}
		if n, ok := h.scene.Node(NodeRod); ok {
			n.End = s.Position
		}
	case params.VariantSandbox:
		h.syncBodies(s.Bodies)
	}
}

func (h *Handle) syncBodies(bodies []dynamo.BodyPose) {
	seen := make(map[string]bool, len(bodies))
	for _, b := range bodies {
		name := BodyNodeName(b.ID)
		seen[name] = true
		n, ok := h.scene.Node(name)
		if !ok {
			n = &Node{Name: name, Color: b.Color}
			switch b.Shape {
			case dynamo.ShapeSphere:
				n.Kind, n.Size = KindSphere, 0.5
			default:
				n.Kind, n.Size = KindBox, 1
			}
			h.scene.Add(n)
		}
		n.Position = b.Position
		n.Angle = b.Angle
	}
	for _, n := range h.scene.Nodes() {
		if strings.HasPrefix(n.Name, "body-") && !seen[n.Name] {
			h.scene.Remove(n.Name)
		}
	}
}

func (h *Handle) Render() error {
	if h.disposed {
		return ErrDisposed
	}
	return h.surface.Draw(h.scene)
}

// Dispose releases the surface and detaches every node. Safe to call more
// than once.
func (h *Handle) Dispose() {
	if h.disposed {
		return
	}
	h.disposed = true
	h.surface.Release()
	h.scene.clear()
	h.mgr.live--
	h.mgr.log.Debug("scene disposed", zap.Stringer("variant", h.variant))
}
