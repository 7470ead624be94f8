// Package params defines the per-mount simulation parameters, their valid
// ranges and the decision of whether a parameter change needs a new scene.
package params

import (
	"fmt"
	"strings"

	"github.com/san-kum/quanticle/internal/dynamo"
)

type Variant int

const (
	VariantProjectile Variant = iota
	VariantPendulum
	VariantSHM
	VariantSandbox
)

var variantNames = [...]string{"projectile", "pendulum", "shm", "sandbox"}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("variant(%d)", int(v))
	}
	return variantNames[v]
}

func ParseVariant(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", dynamo.ErrUnknownVariant, name)
}

func Variants() []Variant {
	return []Variant{VariantProjectile, VariantPendulum, VariantSHM, VariantSandbox}
}

// Parameters is the immutable input of one mounted simulation. The concrete
// types are Projectile, Pendulum, SHM and Sandbox; each carries only the
// fields its model reads.
type Parameters interface {
	Variant() Variant
	isParameters()
}

// Projectile launches from the origin. AngleXY is the elevation and AngleZ
// the heading, both in degrees; Speed is m/s.
type Projectile struct {
	AngleXY float64 `yaml:"angle_xy" json:"angleXY"`
	AngleZ  float64 `yaml:"angle_z" json:"angleZ"`
	Speed   float64 `yaml:"speed" json:"speed"`
}

type Pendulum struct {
	Length float64 `yaml:"length" json:"length"`
	Mass   float64 `yaml:"mass" json:"mass"`
}

type SHM struct {
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
	Frequency float64 `yaml:"frequency" json:"frequency"`
}

// Sandbox names the persisted configuration the sandbox session reads.
type Sandbox struct {
	ConfigID string `yaml:"config_id" json:"configID"`
}

func (Projectile) Variant() Variant { return VariantProjectile }
func (Pendulum) Variant() Variant   { return VariantPendulum }
func (SHM) Variant() Variant        { return VariantSHM }
func (Sandbox) Variant() Variant    { return VariantSandbox }

func (Projectile) isParameters() {}
func (Pendulum) isParameters()   {}
func (SHM) isParameters()        {}
func (Sandbox) isParameters()    {}

// Defaults match the initial slider positions of the host UI.
func Defaults(v Variant) (Parameters, error) {
	switch v {
	case VariantProjectile:
		return Projectile{AngleXY: 45, AngleZ: 0, Speed: 10}, nil
	case VariantPendulum:
		return Pendulum{Length: 2, Mass: 1}, nil
	case VariantSHM:
		return SHM{Amplitude: 2, Frequency: 0.5}, nil
	case VariantSandbox:
		return Sandbox{ConfigID: "default"}, nil
	default:
		return nil, fmt.Errorf("%w: %v", dynamo.ErrUnknownVariant, v)
	}
}

// Mount is the identity of one render session. Bumping ResetKey restarts the
// session with unchanged parameters.
type Mount struct {
	Params   Parameters
	ResetKey int
}

type Decision int

const (
	NoOp Decision = iota
	RecreateScene
)

func (d Decision) String() string {
	if d == RecreateScene {
		return "recreate"
	}
	return "noop"
}

// Reconcile decides what a host must do when the mount changes. There is no
// partial update: any difference recreates the scene.
func Reconcile(old, next Mount) Decision {
	if next.Params == nil {
		return NoOp
	}
	if old.Params == nil {
		return RecreateScene
	}
	if old.ResetKey != next.ResetKey || old.Params != next.Params {
		return RecreateScene
	}
	return NoOp
}
