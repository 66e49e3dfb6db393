package grab

import (
	"gravgrab/internal/components"
)

// bodySnapshot is the immutable record of a body's pre-grab physical
// properties, captured once at pickup and applied wholesale at release.
// Adding a field here is the only step needed to cover a new property.
type bodySnapshot struct {
	useGravity     bool
	linearDamping  float32
	angularDamping float32
	interpolation  components.InterpolationMode
	collisionMode  components.CollisionMode
	constraints    components.ConstraintFlags
}

func takeSnapshot(rb *components.Rigidbody) bodySnapshot {
	return bodySnapshot{
		useGravity:     rb.UseGravity,
		linearDamping:  rb.LinearDamping,
		angularDamping: rb.AngularDamping,
		interpolation:  rb.Interpolation,
		collisionMode:  rb.CollisionMode,
		constraints:    rb.Constraints,
	}
}

// applyTo restores every snapshotted field verbatim.
func (s bodySnapshot) applyTo(rb *components.Rigidbody) {
	rb.UseGravity = s.useGravity
	rb.LinearDamping = s.linearDamping
	rb.AngularDamping = s.angularDamping
	rb.Interpolation = s.interpolation
	rb.CollisionMode = s.collisionMode
	rb.Constraints = s.constraints
}
