package viz

import (
	"errors"
	"testing"

	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/scene"
)

func TestBrailleSurfaceDrawsComposedScene(t *testing.T) {
	var created *BrailleSurface
	m := scene.NewManager(BrailleFactory(40, 12, func(s *BrailleSurface) { created = s }), nil)
	h, err := m.Create(params.Pendulum{Length: 2, Mass: 1})
	if err != nil {
		t.Fatal(err)
	}
	if created == nil {
		t.Fatal("factory callback not invoked")
	}
	if err := h.Render(); err != nil {
		t.Fatal(err)
	}
	if created.Draws() != 1 {
		t.Errorf("draws = %d", created.Draws())
	}
	blankFrame := NewCanvas(40, 12).String()
	if created.Frame() == blankFrame {
		t.Error("frame is blank")
	}

	h.Dispose()
	if !created.Released() {
		t.Error("surface not released on dispose")
	}
	if err := created.Draw(h.Scene()); !errors.Is(err, scene.ErrDisposed) {
		t.Errorf("draw after release = %v", err)
	}
}

func TestShade(t *testing.T) {
	full := []scene.Light{{Kind: scene.Ambient, Intensity: 1, Color: "#ffffff"}}
	if got := Shade("#ffffff", full); got != "#ffffff" {
		t.Errorf("full light = %s", got)
	}
	if got := Shade("#ffffff", nil); got == "#ffffff" {
		t.Error("unlit color not darkened")
	}
	if got := Shade("not-a-color", nil); got != "not-a-color" {
		t.Errorf("invalid color altered: %s", got)
	}
}

func TestProjectileSceneKeepsMaterialColors(t *testing.T) {
	m := scene.NewManager(nil, nil)
	h, err := m.Create(params.Projectile{AngleXY: 45, Speed: 10})
	if err != nil {
		t.Fatal(err)
	}
	defer h.Dispose()

	lights := h.Scene().Lights
	for _, c := range []string{scene.ColorProjectile, scene.ColorGround} {
		if got := Shade(c, lights); got != c {
			t.Errorf("Shade(%s) = %s, want unchanged", c, got)
		}
	}
}

func TestFormatReadout(t *testing.T) {
	rows := FormatReadout(dynamo.AngleReadout{Theta: 0.5235987755982988})
	if len(rows) != 2 || rows[0][1] != "30.00°" || rows[1][1] != "0.00°" {
		t.Errorf("angle rows = %v", rows)
	}

	rows = FormatReadout(dynamo.PositionReadout{X: 1.234, Y: -2, Z: 0})
	if rows[0][1] != "1.23 m" || rows[1][1] != "-2.00 m" {
		t.Errorf("position rows = %v", rows)
	}

	rows = FormatReadout(dynamo.BodyCountReadout{Count: 3})
	if rows[0] != [2]string{"bodies", "3"} {
		t.Errorf("count rows = %v", rows)
	}

	if FormatReadout(nil) != nil {
		t.Error("nil readout should format to nothing")
	}
}
