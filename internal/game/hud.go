package game

import (
	"fmt"

	"gravgrab/internal/grab"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// tuningPanel is a live slider panel over the grab tuning. Edits apply
// immediately; a config reload from disk overwrites them.
type tuningPanel struct {
	visible bool
}

const (
	panelW   = float32(320)
	rowH     = float32(20)
	rowPad   = float32(6)
	panelPad = float32(12)
	labelW   = float32(110)
)

func (p *tuningPanel) draw(t *grab.Tuning) {
	if !p.visible {
		return
	}

	rows := 11
	panelH := panelPad*2 + 24 + float32(rows)*(rowH+rowPad)
	x := float32(rl.GetScreenWidth()) - panelW - 10
	y := float32(10)

	rl.DrawRectangleRec(rl.Rectangle{X: x, Y: y, Width: panelW, Height: panelH}, rl.NewColor(30, 32, 40, 235))
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x, Y: y, Width: panelW, Height: panelH}, 1, rl.NewColor(90, 95, 110, 255))
	rl.DrawText("Grab Tuning (F2)", int32(x+panelPad), int32(y+panelPad), 18, rl.RayWhite)

	rowY := y + panelPad + 28
	slider := func(label string, value *float32, min, max float32) {
		rl.DrawText(label, int32(x+panelPad), int32(rowY+3), 14, rl.LightGray)
		bounds := rl.Rectangle{X: x + panelPad + labelW, Y: rowY, Width: panelW - labelW - 2*panelPad, Height: rowH}
		*value = gui.Slider(bounds, "", fmt.Sprintf("%.1f", *value), *value, min, max)
		rowY += rowH + rowPad
	}

	slider("Spring Kp", &t.SpringKp, 5, 200)
	slider("Spring Kd", &t.SpringKd, 0, 50)
	slider("Rotation Kp", &t.RotationKp, 1, 120)
	slider("Rotation Kd", &t.RotationKd, 0, 20)
	slider("Max Force", &t.MaxForce, 100, 10000)
	slider("Max Torque", &t.MaxTorque, 10, 2000)
	slider("Throw Impulse", &t.ThrowImpulse, 1, 50)
	slider("Punt Impulse", &t.PuntImpulse, 1, 50)
	slider("Max Mass", &t.MaxPickupMass, 10, 500)
	slider("Align Weight", &t.AlignmentWeight, 0, 10)

	checkBounds := rl.Rectangle{X: x + panelPad, Y: rowY, Width: rowH, Height: rowH}
	t.KeepUpright = gui.CheckBox(checkBounds, "Keep held objects upright", t.KeepUpright)
}
