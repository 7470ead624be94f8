package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking at Target. FOV is vertical, in
// degrees.
type Camera struct {
	Eye, Target, Up mgl64.Vec3
	FOV             float64
	Near, Far       float64
}

func NewCamera(eye mgl64.Vec3, fov float64) Camera {
	return Camera{
		Eye:  eye,
		Up:   mgl64.Vec3{0, 1, 0},
		FOV:  fov,
		Near: 0.1,
		Far:  1000,
	}
}

// ViewProjection returns projection * view for the given aspect ratio.
func (c Camera) ViewProjection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 || math.IsNaN(aspect) {
		aspect = 1
	}
	view := mgl64.LookAtV(c.Eye, c.Target, c.Up)
	proj := mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
	return proj.Mul4(view)
}

// Project maps a world point to pixel coordinates on a w x h surface.
// Returns x, y, depth in [-1, 1] and whether the point is inside the frustum.
func (c Camera) Project(p mgl64.Vec3, w, h int) (int, int, float64, bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, false
	}
	clip := c.ViewProjection(float64(w) / float64(h)).Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, 0, false
	}
	nx, ny, nz := clip[0]/clip[3], clip[1]/clip[3], clip[2]/clip[3]
	sx := int(math.Round((nx + 1) / 2 * float64(w-1)))
	sy := int(math.Round((1 - ny) / 2 * float64(h-1)))
	visible := nx >= -1 && nx <= 1 && ny >= -1 && ny <= 1 && nz >= -1 && nz <= 1
	return sx, sy, nz, visible
}

// Orbit rotates the eye around Target by yaw radians about the up axis.
func (c *Camera) Orbit(yaw float64) {
	rel := c.Eye.Sub(c.Target)
	rot := mgl64.HomogRotate3D(yaw, c.Up.Normalize())
	c.Eye = c.Target.Add(rot.Mul4x1(rel.Vec4(0)).Vec3())
}

// Dolly scales the eye distance to Target.
func (c *Camera) Dolly(factor float64) {
	if factor <= 0 {
		return
	}
	rel := c.Eye.Sub(c.Target).Mul(factor)
	if rel.Len() < c.Near*2 {
		return
	}
	c.Eye = c.Target.Add(rel)
}
