package physics

import (
	"math"
	"testing"
)

func TestBallisticRange(t *testing.T) {
	tests := []struct {
		angleXY, angleZ, speed float64
	}{
		{45, 0, 10},
		{30, 20, 25},
		{60, -45, 5},
	}

	for _, tt := range tests {
		b := NewBallistic(tt.angleXY, tt.angleZ, tt.speed)
		theta := tt.angleXY * math.Pi / 180
		want := tt.speed * tt.speed * math.Sin(2*theta) / StandardGravity
		if math.Abs(b.Range()-want) > 1e-9 {
			t.Errorf("range(%v) = %f, want %f", tt, b.Range(), want)
		}

		landing := b.At(b.FlightTime())
		if math.Abs(landing.Y()) > 1e-9 {
			t.Errorf("y at flight time = %g, want 0", landing.Y())
		}
	}
}

func TestBallisticHeading(t *testing.T) {
	b := NewBallistic(45, 90, 10)
	if math.Abs(b.Vx) > 1e-12 {
		t.Errorf("vx = %g, want 0 for heading 90", b.Vx)
	}
	if b.Vz <= 0 {
		t.Errorf("vz = %g, want positive", b.Vz)
	}
}

func TestOscillatorPhase(t *testing.T) {
	o := NewOscillator(2, 0.5)
	quarter := o.Period() / 4

	for i := 0; i < 100; i++ {
		tm := float64(i) * 0.037
		p := o.At(tm)
		ahead := o.At(tm + quarter)
		if math.Abs(p.Y()-ahead.X()) > 1e-9 {
			t.Fatalf("y(%f)=%f, x(t+T/4)=%f", tm, p.Y(), ahead.X())
		}
		for axis := 0; axis < 3; axis++ {
			if math.Abs(p[axis]) > o.Amplitude+1e-12 {
				t.Fatalf("axis %d = %f exceeds amplitude", axis, p[axis])
			}
		}
	}
}
