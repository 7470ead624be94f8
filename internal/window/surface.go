//go:build raylib

package window

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/quanticle/internal/scene"
)

// Surface draws a scene in 3D mode. It must be used between BeginDrawing and
// EndDrawing on the window thread.
type Surface struct {
	draws    int
	released bool
}

func Factory() scene.SurfaceFactory {
	return func() (scene.Surface, error) { return &Surface{}, nil }
}

func (s *Surface) Draw(sc *scene.Scene) error {
	if s.released {
		return scene.ErrDisposed
	}
	rl.BeginMode3D(camera(sc.Camera))
	for _, p := range Primitives(sc) {
		switch p.Kind {
		case PrimSphere:
			rl.DrawSphere(vec3(p.A), float32(p.Radius), color(p.Color))
		case PrimSegment:
			rl.DrawLine3D(vec3(p.A), vec3(p.B), color(p.Color))
		}
	}
	rl.EndMode3D()
	s.draws++
	return nil
}

func (s *Surface) Release() { s.released = true }

func camera(c scene.Camera) rl.Camera3D {
	return rl.NewCamera3D(vec3(c.Eye), vec3(c.Target), vec3(c.Up), float32(c.FOV), rl.CameraPerspective)
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

func color(c RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
