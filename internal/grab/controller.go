package grab

import (
	"math"

	"gravgrab/internal/components"
	"gravgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var worldUp = rl.Vector3{Y: 1}

// holdController converts the gap between anchor and held body into a
// clamped force and torque, once per fixed tick.
type holdController struct {
	tuning *Tuning
}

// tick applies this tick's PD force and torque to the held body and returns
// what was applied, for instrumentation.
func (h *holdController) tick(anchor *Anchor, body *engine.GameObject, rb *components.Rigidbody, controllerForward rl.Vector3) (rl.Vector3, rl.Vector3) {
	t := h.tuning

	// Position channel
	posErr := rl.Vector3Subtract(anchor.Position, rb.CenterOfMass())
	velErr := rl.Vector3Subtract(anchor.Velocity, rb.Velocity)
	force := rl.Vector3Add(
		rl.Vector3Scale(posErr, t.SpringKp),
		rl.Vector3Scale(velErr, t.SpringKd),
	)
	force = clampMagnitude(force, t.MaxForce)
	rb.AddForce(force)

	// Rotation channel
	desired := anchor.Orientation
	if t.KeepUpright {
		desired = uprightOrientation(anchor.Orientation, controllerForward)
	}

	current := body.Transform.Quaternion()
	errQ := rl.QuaternionMultiply(desired, rl.QuaternionInvert(current))
	axis, angle := toAxisAngle(errQ)
	angle = wrapAngle(angle)

	angErr := rl.Vector3Scale(axis, angle)
	angVelErr := rl.Vector3Scale(rb.AngularVelocity, -rl.Deg2rad) // target spin is zero

	torque := rl.Vector3Add(
		rl.Vector3Scale(angErr, t.RotationKp),
		rl.Vector3Scale(angVelErr, t.RotationKd),
	)
	torque = clampMagnitude(torque, t.MaxTorque)
	rb.AddTorque(torque)

	return force, torque
}

// uprightOrientation yields a yaw-only orientation facing where the anchor
// faces, keeping the held body level. When the anchor looks nearly straight
// up or down the flattened direction degenerates and the controller's own
// forward is used instead.
func uprightOrientation(anchorOrientation rl.Quaternion, controllerForward rl.Vector3) rl.Quaternion {
	forward := rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, anchorOrientation)
	forward.Y = 0
	if rl.Vector3Length(forward) < 1e-4 {
		forward = controllerForward
		forward.Y = 0
		if rl.Vector3Length(forward) < 1e-4 {
			forward = rl.Vector3{Z: 1}
		}
	}
	return lookRotation(forward, worldUp)
}

// lookRotation builds the orientation whose +Z axis points along forward.
func lookRotation(forward, up rl.Vector3) rl.Quaternion {
	f := rl.Vector3Normalize(forward)
	r := rl.Vector3CrossProduct(up, f)
	if rl.Vector3Length(r) < 1e-6 {
		// forward parallel to up: borrow a perpendicular axis
		r = rl.Vector3CrossProduct(rl.Vector3{X: 1}, f)
	}
	r = rl.Vector3Normalize(r)
	u := rl.Vector3CrossProduct(f, r)

	m := rl.Matrix{
		M0: r.X, M1: r.Y, M2: r.Z,
		M4: u.X, M5: u.Y, M6: u.Z,
		M8: f.X, M9: f.Y, M10: f.Z,
		M15: 1,
	}
	return rl.QuaternionFromMatrix(m)
}

// toAxisAngle converts a rotation quaternion to a unit axis and an angle in
// radians in [0, 2pi].
func toAxisAngle(q rl.Quaternion) (rl.Vector3, float32) {
	q = rl.QuaternionNormalize(q)
	w := clampf(q.W, -1, 1)
	angle := 2 * float32(math.Acos(float64(w)))
	s := float32(math.Sqrt(float64(1 - w*w)))
	if s < 1e-4 {
		// No meaningful rotation; any axis works
		return rl.Vector3{X: 1}, angle
	}
	return rl.Vector3{X: q.X / s, Y: q.Y / s, Z: q.Z / s}, angle
}

// wrapAngle maps an angle in radians into (-pi, pi], so a 270 degree error
// becomes a -90 degree one and the controller takes the short way around.
func wrapAngle(a float32) float32 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// clampMagnitude rescales v to length max, preserving direction, when it is
// longer than max.
func clampMagnitude(v rl.Vector3, max float32) rl.Vector3 {
	length := rl.Vector3Length(v)
	if length > max && length > 0 {
		return rl.Vector3Scale(v, max/length)
	}
	return v
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
