//go:build raylib

package window

import (
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/params"
)

const (
	width  = 1280
	height = 720
	title  = "quanticle"
)

var (
	colBg   = rl.NewColor(10, 10, 10, 255)
	colText = rl.NewColor(180, 180, 180, 255)
	colErr  = rl.NewColor(255, 85, 85, 255)
)

// Run opens the window and drives d until the window closes or Q is pressed.
// raylib must stay on the thread that created the window.
func Run(opts Options, fps int) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if fps <= 0 {
		fps = 60
	}
	rl.InitWindow(width, height, title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
	defer rl.CloseWindow()

	opts.Factory = Factory()
	d := NewDriver(opts)
	defer d.Close()
	if err := d.Start(); err != nil {
		return err
	}

	for !rl.WindowShouldClose() {
		if !handleInput(d) {
			break
		}
		rl.BeginDrawing()
		rl.ClearBackground(colBg)
		d.Frame()
		drawHUD(d)
		rl.EndDrawing()
	}
	return nil
}

// handleInput applies this frame's key presses. It returns false on quit.
func handleInput(d *Driver) bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	variants := []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour}
	for i, k := range variants {
		if rl.IsKeyPressed(k) {
			_ = d.SelectVariant(params.Variants()[i])
		}
	}

	switch {
	case rl.IsKeyPressed(rl.KeyTab):
		d.NextField()
	case rl.IsKeyPressed(rl.KeyUp), rl.IsKeyPressed(rl.KeyK):
		_ = d.Nudge(1)
	case rl.IsKeyPressed(rl.KeyDown), rl.IsKeyPressed(rl.KeyJ):
		_ = d.Nudge(-1)
	case rl.IsKeyPressed(rl.KeyR):
		_ = d.Restart()
	case rl.IsKeyPressed(rl.KeySpace):
		d.TogglePause()
	case rl.IsKeyPressed(rl.KeyS):
		_ = d.SpawnDefault()
	case rl.IsKeyPressed(rl.KeyB):
		_ = d.SpawnShape(dynamo.ShapeBox)
	case rl.IsKeyPressed(rl.KeyO):
		_ = d.SpawnShape(dynamo.ShapeSphere)
	case rl.IsKeyPressed(rl.KeyEnter):
		_ = d.SpawnTool()
	case rl.IsKeyPressed(rl.KeyM):
		d.NudgeToolMass(1)
	case rl.IsKeyPressed(rl.KeyN):
		d.NudgeToolMass(-1)
	case rl.IsKeyPressed(rl.KeyP):
		d.NextToolColor()
	case rl.IsKeyPressed(rl.KeyC):
		_ = d.ResetScene()
	case rl.IsKeyPressed(rl.KeyG):
		_ = d.ToggleGravity()
	}

	if rl.IsKeyDown(rl.KeyLeft) {
		d.Orbit(-0.02)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		d.Orbit(0.02)
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		d.Dolly(1 - 0.1*float64(wheel))
	}
	return true
}

func drawHUD(d *Driver) {
	y := int32(20)
	for _, line := range d.HUD() {
		rl.DrawText(line, 20, y, 20, colText)
		y += 24
	}
	if d.Loading() {
		rl.DrawText("loading sandbox config", width/2-120, height/2, 20, colErr)
	}
	rl.DrawText("1-4 sim  tab/up/down tune  r restart  space pause  s b o enter spawn  m n p tool  c clear  g gravity  q quit",
		20, height-30, 16, colText)
}
