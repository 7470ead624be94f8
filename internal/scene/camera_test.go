package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestProjectTargetIsCentered(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{6, 6, 6}, 55)
	x, y, _, ok := cam.Project(mgl64.Vec3{}, 101, 51)
	if !ok {
		t.Fatal("target not visible")
	}
	if x != 50 || y != 25 {
		t.Errorf("target at (%d,%d), want (50,25)", x, y)
	}
}

func TestProjectBehindCamera(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{0, 0, 10}, 60)
	if _, _, _, ok := cam.Project(mgl64.Vec3{0, 0, 20}, 80, 40); ok {
		t.Error("point behind the eye should not be visible")
	}
}

func TestProjectUpIsUp(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{0, 0, 10}, 60)
	_, yTop, _, _ := cam.Project(mgl64.Vec3{0, 1, 0}, 80, 40)
	_, yMid, _, _ := cam.Project(mgl64.Vec3{}, 80, 40)
	if yTop >= yMid {
		t.Errorf("y=1 projected to row %d, origin to %d", yTop, yMid)
	}
}

func TestOrbitKeepsDistance(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{20, 15, 20}, 75)
	before := cam.Eye.Len()
	cam.Orbit(math.Pi / 3)
	if math.Abs(cam.Eye.Len()-before) > 1e-9 {
		t.Errorf("distance %v -> %v", before, cam.Eye.Len())
	}
	if math.Abs(cam.Eye.Y()-15) > 1e-9 {
		t.Errorf("orbit changed height: %v", cam.Eye.Y())
	}
}

func TestDolly(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{0, 0, 10}, 60)
	cam.Dolly(0.5)
	if math.Abs(cam.Eye.Z()-5) > 1e-12 {
		t.Errorf("eye = %v", cam.Eye)
	}
	cam.Dolly(0)
	if math.Abs(cam.Eye.Z()-5) > 1e-12 {
		t.Error("zero factor should be ignored")
	}
}
