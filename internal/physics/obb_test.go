package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var unitScale = rl.Vector3{X: 1, Y: 1, Z: 1}

func TestOBBSeparated(t *testing.T) {
	a := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{}, unitScale)
	b := NewOBB(rl.Vector3{X: 3}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{}, unitScale)

	if _, ok := a.MTV(b); ok {
		t.Error("Boxes two meters apart must not overlap")
	}
}

func TestOBBMTVSmallestAxis(t *testing.T) {
	// Overlap of 0.2 along X, full overlap elsewhere: MTV must push -X.
	a := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{}, unitScale)
	b := NewOBB(rl.Vector3{X: 0.8}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{}, unitScale)

	mtv, ok := a.MTV(b)
	if !ok {
		t.Fatal("Expected overlap")
	}
	if absf(mtv.X+0.2) > 1e-4 || absf(mtv.Y) > 1e-4 || absf(mtv.Z) > 1e-4 {
		t.Errorf("Expected MTV (-0.2, 0, 0), got %+v", mtv)
	}
}

func TestOBBRotatedOverlap(t *testing.T) {
	// A 45-degree box reaches sqrt(2)/2 = 0.707 along X instead of 0.5, so
	// against a unit neighbor it touches out to 1.207 between centers.
	a := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{Y: 45}, unitScale)
	near := NewOBB(rl.Vector3{X: 1.1}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{}, unitScale)
	far := NewOBB(rl.Vector3{X: 1.3}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{}, unitScale)

	if _, ok := a.MTV(near); !ok {
		t.Error("Rotated corner should reach the near box")
	}
	if _, ok := a.MTV(far); ok {
		t.Error("Rotated corner should not reach the far box")
	}
}

func TestOBBScaleGrowsExtents(t *testing.T) {
	a := NewOBB(rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{}, rl.Vector3{X: 4, Y: 1, Z: 1})
	b := NewOBB(rl.Vector3{X: 2.4}, rl.Vector3{X: 1, Y: 1, Z: 1}, rl.Vector3{}, unitScale)

	if _, ok := a.MTV(b); !ok {
		t.Error("A 4x scaled box should reach 2.4 units out")
	}
}

func TestOBBClosestPoint(t *testing.T) {
	box := NewOBB(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2}, rl.Vector3{}, unitScale)

	// Outside: clamped to the face
	p := box.ClosestPoint(rl.Vector3{X: 5, Y: 0.5})
	if absf(p.X-1) > 1e-4 || absf(p.Y-0.5) > 1e-4 {
		t.Errorf("Expected (1, 0.5, 0), got %+v", p)
	}

	// Inside: returned unchanged
	inside := rl.Vector3{X: 0.3, Y: -0.2, Z: 0.1}
	p = box.ClosestPoint(inside)
	if absf(p.X-inside.X) > 1e-4 || absf(p.Y-inside.Y) > 1e-4 || absf(p.Z-inside.Z) > 1e-4 {
		t.Errorf("Interior point should map to itself, got %+v", p)
	}
}
