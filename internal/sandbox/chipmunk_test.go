package sandbox

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/quanticle/internal/dynamo"
)

func TestChipmunkBodyFallsAndRests(t *testing.T) {
	e := NewChipmunk(Gravity)
	defer e.Close()

	h, err := e.Register(BodySpec{Shape: dynamo.ShapeBox, Mass: 1, Position: SpawnPoint})
	if err != nil {
		t.Fatal(err)
	}

	// positions integrate before velocities, so the first step only
	// accelerates the body
	e.Step(Dt)
	p, _ := e.Pose(h)
	if p.Velocity.Y() >= 0 {
		t.Errorf("body not accelerating down: vy = %v", p.Velocity.Y())
	}
	e.Step(Dt)
	p, _ = e.Pose(h)
	if p.Position.Y() >= SpawnPoint.Y() {
		t.Errorf("body did not fall: y = %v", p.Position.Y())
	}

	for i := 0; i < 300; i++ {
		e.Step(Dt)
	}
	p, ok := e.Pose(h)
	if !ok {
		t.Fatal("body lost")
	}
	if math.Abs(p.Position.Y()-BoxSize/2) > 0.2 {
		t.Errorf("resting y = %v, want ~%v", p.Position.Y(), BoxSize/2)
	}
	if p.Position.Z() != 0 {
		t.Errorf("z = %v", p.Position.Z())
	}
}

func TestCrowdedSpawnsStayOnGround(t *testing.T) {
	c := New(nil, nil)
	defer c.Close()
	if err := c.Apply(DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 6; i++ {
		shape := dynamo.ShapeBox
		if i%2 == 1 {
			shape = dynamo.ShapeSphere
		}
		if _, err := c.Spawn(shape, 1, "#7b61ff"); err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 3000; i++ {
		c.Step()
	}
	for _, b := range c.Bodies() {
		if b.Position.Y() < 0 {
			t.Errorf("body %d fell through the ground: %v", b.ID, b.Position)
		}
	}
}

func TestChipmunkWeightless(t *testing.T) {
	e := NewChipmunk(mgl64.Vec3{})
	h, _ := e.Register(BodySpec{Shape: dynamo.ShapeSphere, Mass: 2, Position: SpawnPoint})
	for i := 0; i < 60; i++ {
		e.Step(Dt)
	}
	p, _ := e.Pose(h)
	if p.Position.Sub(SpawnPoint).Len() > 1e-9 {
		t.Errorf("body drifted to %v", p.Position)
	}
}

func TestChipmunkDeregister(t *testing.T) {
	e := NewChipmunk(Gravity)
	h, _ := e.Register(BodySpec{Shape: dynamo.ShapeBox, Mass: 1, Position: SpawnPoint})
	e.Deregister(h)
	e.Deregister(h)
	if e.Bodies() != 0 {
		t.Errorf("bodies = %d", e.Bodies())
	}
	if _, ok := e.Pose(h); ok {
		t.Error("pose of removed body")
	}
	if _, err := e.Register(BodySpec{Shape: dynamo.ShapeBox, Mass: 0}); err == nil {
		t.Error("zero mass accepted")
	}
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#FF8800", "#ff8800", true},
		{" #00ff00 ", "#00ff00", true},
		{"#fff", "", false},
		{"ff8800", "", false},
		{"#gg0000", "", false},
	}
	for _, tt := range tests {
		got, err := NormalizeColor(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("NormalizeColor(%q) = %q, %v", tt.in, got, err)
		}
	}
}
