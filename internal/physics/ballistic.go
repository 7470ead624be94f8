package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ballistic is drag-free projectile motion launched from the origin.
type Ballistic struct {
	Vx, Vy0, Vz float64
	Gravity     float64
}

// NewBallistic decomposes speed into components. angleXY is the elevation
// above the ground plane and angleZ the heading in that plane, both degrees.
func NewBallistic(angleXY, angleZ, speed float64) Ballistic {
	radXY := mgl64.DegToRad(angleXY)
	radZ := mgl64.DegToRad(angleZ)
	return Ballistic{
		Vx:      speed * math.Cos(radXY) * math.Cos(radZ),
		Vz:      speed * math.Cos(radXY) * math.Sin(radZ),
		Vy0:     speed * math.Sin(radXY),
		Gravity: StandardGravity,
	}
}

func (b Ballistic) At(t float64) mgl64.Vec3 {
	return mgl64.Vec3{
		b.Vx * t,
		b.Vy0*t - 0.5*b.Gravity*t*t,
		b.Vz * t,
	}
}

func (b Ballistic) FlightTime() float64 {
	return 2 * b.Vy0 / b.Gravity
}

// Range is the closed-form horizontal distance at landing.
func (b Ballistic) Range() float64 {
	return math.Hypot(b.Vx, b.Vz) * b.FlightTime()
}

func (b Ballistic) PeakHeight() float64 {
	return b.Vy0 * b.Vy0 / (2 * b.Gravity)
}
