package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/params"
)

const (
	NodeGround = "ground"
	NodeBody   = "body"
	NodePivot  = "pivot"
	NodeRod    = "rod"
	NodeBob    = "bob"

	ColorGround     = "#444444"
	ColorProjectile = "#00ffff"
	ColorBob        = "#ff5555"
	ColorRod        = "#ffffff"
	ColorSHM        = "#00ff00"
	ColorAmbient    = "#555555"
	ColorUnlit      = "#ffffff"
)

func compose(p params.Parameters) (*Scene, error) {
	switch p := p.(type) {
	case params.Projectile:
		s := newScene(NewCamera(mgl64.Vec3{20, 15, 20}, 75))
		// the projectile is drawn unlit: one full white ambient keeps
		// material colors as they are
		s.Lights = []Light{{Kind: Ambient, Intensity: 1, Color: ColorUnlit}}
		s.Add(&Node{Name: NodeGround, Kind: KindPlane, Size: 200, Color: ColorGround})
		s.Add(&Node{Name: NodeBody, Kind: KindSphere, Size: 0.5, Color: ColorProjectile})
		return s, nil

	case params.Pendulum:
		l := p.Length
		s := newScene(NewCamera(mgl64.Vec3{2 * l, 2 * l, 2 * l}, 75))
		s.Lights = litLights()
		bob := mgl64.Vec3{0, -l, 0}
		s.Add(&Node{Name: NodePivot, Kind: KindSphere, Size: 0.05, Color: ColorRod})
		s.Add(&Node{Name: NodeRod, Kind: KindLine, End: bob, Color: ColorRod})
		s.Add(&Node{Name: NodeBob, Kind: KindSphere, Position: bob, Size: math.Max(0.1, 0.1*l), Color: ColorBob})
		return s, nil

	case params.SHM:
		a := p.Amplitude
		s := newScene(NewCamera(mgl64.Vec3{3 * a, 3 * a, 3 * a}, 75))
		s.Lights = litLights()
		s.Add(&Node{Name: NodeBody, Kind: KindSphere, Size: math.Max(0.1, 0.1*a), Color: ColorSHM})
		return s, nil

	case params.Sandbox:
		s := newScene(NewCamera(mgl64.Vec3{6, 6, 6}, 55))
		s.Lights = []Light{
			{Kind: Ambient, Intensity: 0.4, Color: ColorRod},
			{Kind: Directional, Position: mgl64.Vec3{10, 10, 5}, Intensity: 1, Color: ColorRod},
		}
		s.Add(&Node{Name: NodeGround, Kind: KindPlane, Size: 50, Color: ColorGround})
		return s, nil

	default:
		return nil, fmt.Errorf("%w: %T", dynamo.ErrUnknownVariant, p)
	}
}

func litLights() []Light {
	return []Light{
		{Kind: Directional, Position: mgl64.Vec3{10, 10, 10}, Intensity: 1, Color: ColorRod},
		{Kind: Ambient, Intensity: 1, Color: ColorAmbient},
	}
}

// BodyNodeName names the mesh that mirrors sandbox body id.
func BodyNodeName(id uint64) string {
	return fmt.Sprintf("body-%d", id)
}
