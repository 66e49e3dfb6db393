package grab

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// minTickDuration floors the dt used for velocity derivation so a stalled or
// zero-length tick can't blow the anchor velocity up.
const minTickDuration = 1e-4

// Anchor is the kinematic reference pose the held body is driven toward.
// One anchor is created with the grabber and lives as long as it does; it
// advances every fixed tick whether or not something is held, so its
// velocity estimate is always warm when a hold starts.
type Anchor struct {
	Position    rl.Vector3
	Orientation rl.Quaternion
	Velocity    rl.Vector3

	// PrevPosition is the pose before the latest Advance. Consumers that
	// want smooth motion interpolate between the two instead of sampling a
	// teleported pose.
	PrevPosition rl.Vector3

	prevTarget rl.Vector3
	hasTarget  bool
}

func NewAnchor() *Anchor {
	return &Anchor{
		Orientation: rl.QuaternionIdentity(),
	}
}

// Advance moves the anchor to the controller-defined target pose and derives
// its velocity from the previous tick's target. The target is always
// persisted, held or not.
func (a *Anchor) Advance(origin, forward rl.Vector3, orientation rl.Quaternion, holdDistance, dt float32) {
	target := rl.Vector3Add(origin, rl.Vector3Scale(forward, holdDistance))

	if dt < minTickDuration {
		dt = minTickDuration
	}
	if a.hasTarget {
		a.Velocity = rl.Vector3Scale(rl.Vector3Subtract(target, a.prevTarget), 1/dt)
	} else {
		// First tick: no history, a zero velocity beats a bogus spike
		a.Velocity = rl.Vector3{}
		a.hasTarget = true
	}

	a.PrevPosition = a.Position
	a.Position = target
	a.Orientation = orientation
	a.prevTarget = target
}
