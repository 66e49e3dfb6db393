package physics

import (
	"gravgrab/internal/components"
	"gravgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// contact is the narrowphase result: a unit normal pointing from b toward a
// and the penetration depth along it.
type contact struct {
	normal      rl.Vector3
	penetration float32
}

// findContact intersects the colliders of two objects. Supports
// sphere/sphere, sphere/box and box/box (both boxes oriented).
func findContact(a, b *engine.GameObject) (contact, bool) {
	sphereA := engine.GetComponent[*components.SphereCollider](a)
	sphereB := engine.GetComponent[*components.SphereCollider](b)
	boxA := engine.GetComponent[*components.BoxCollider](a)
	boxB := engine.GetComponent[*components.BoxCollider](b)

	switch {
	case sphereA != nil && sphereB != nil:
		return sphereSphere(sphereA, sphereB)
	case sphereA != nil && boxB != nil:
		return sphereBox(sphereA, boxB, b)
	case boxA != nil && sphereB != nil:
		c, ok := sphereBox(sphereB, boxA, a)
		c.normal = rl.Vector3Scale(c.normal, -1)
		return c, ok
	case boxA != nil && boxB != nil:
		obbA := NewOBB(boxA.GetCenter(), boxA.Size, a.WorldRotation(), a.WorldScale())
		obbB := NewOBB(boxB.GetCenter(), boxB.Size, b.WorldRotation(), b.WorldScale())
		mtv, ok := obbA.MTV(obbB)
		if !ok {
			return contact{}, false
		}
		pen := rl.Vector3Length(mtv)
		if pen < 0.0001 {
			return contact{}, false
		}
		return contact{normal: rl.Vector3Scale(mtv, 1/pen), penetration: pen}, true
	}
	return contact{}, false
}

func sphereSphere(sa, sb *components.SphereCollider) (contact, bool) {
	diff := rl.Vector3Subtract(sa.GetCenter(), sb.GetCenter())
	dist := rl.Vector3Length(diff)
	minDist := sa.Radius + sb.Radius
	if dist >= minDist || dist < 0.0001 {
		return contact{}, false
	}
	return contact{
		normal:      rl.Vector3Scale(diff, 1/dist),
		penetration: minDist - dist,
	}, true
}

func sphereBox(s *components.SphereCollider, box *components.BoxCollider, boxObj *engine.GameObject) (contact, bool) {
	center := s.GetCenter()
	obb := NewOBB(box.GetCenter(), box.Size, boxObj.WorldRotation(), boxObj.WorldScale())
	closest := obb.ClosestPoint(center)

	diff := rl.Vector3Subtract(center, closest)
	dist := rl.Vector3Length(diff)
	if dist >= s.Radius || dist < 0.0001 {
		return contact{}, false
	}
	return contact{
		normal:      rl.Vector3Scale(diff, 1/dist),
		penetration: s.Radius - dist,
	}, true
}

// resolveDynamicPair separates two dynamic bodies and exchanges an impulse.
func (w *World) resolveDynamicPair(a, b *engine.GameObject) {
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil {
		return
	}
	if rbA.IsSleeping && rbB.IsSleeping {
		return
	}
	if w.pairExcluded(a, b) {
		return
	}

	c, ok := findContact(a, b)
	if !ok {
		return
	}
	w.recordCollision(a, b)

	// Split the separation by mass ratio
	totalMass := rbA.Mass + rbB.Mass
	push := rl.Vector3Scale(c.normal, c.penetration)
	a.Transform.Position = rl.Vector3Add(a.Transform.Position, rl.Vector3Scale(push, rbB.Mass/totalMass))
	b.Transform.Position = rl.Vector3Subtract(b.Transform.Position, rl.Vector3Scale(push, rbA.Mass/totalMass))

	relVel := rl.Vector3Subtract(rbA.Velocity, rbB.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, c.normal)

	// Settle slow stacked contacts instead of bouncing them
	if rl.Vector3Length(relVel) < 0.5 && c.penetration < 0.1 {
		friction := (rbA.Friction + rbB.Friction) / 2
		rbA.Velocity = rl.Vector3Scale(rbA.Velocity, 1-friction)
		rbB.Velocity = rl.Vector3Scale(rbB.Velocity, 1-friction)
		return
	}

	if velAlongNormal > 0 {
		return // already separating
	}

	e := (rbA.Bounciness + rbB.Bounciness) / 2
	j := -(1 + e) * velAlongNormal
	j /= 1/rbA.Mass + 1/rbB.Mass

	impulse := rl.Vector3Scale(c.normal, j)
	rbA.Velocity = rl.Vector3Add(rbA.Velocity, rl.Vector3Scale(impulse, 1/rbA.Mass))
	rbB.Velocity = rl.Vector3Subtract(rbB.Velocity, rl.Vector3Scale(impulse, 1/rbB.Mass))

	spinFromImpulse(rbA, c.normal, impulse, a)
	spinFromImpulse(rbB, rl.Vector3Scale(c.normal, -1), rl.Vector3Scale(impulse, -1), b)
}

// spinFromImpulse adds angular velocity from an off-center impulse. The
// contact point is estimated on the collider surface along the normal.
func spinFromImpulse(rb *components.Rigidbody, normal, impulse rl.Vector3, obj *engine.GameObject) {
	var lever rl.Vector3
	scale := float32(50.0)
	if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil {
		lever = rl.Vector3Scale(normal, -sphere.Radius)
	} else if box := engine.GetComponent[*components.BoxCollider](obj); box != nil {
		half := rl.Vector3Scale(box.GetWorldSize(), 0.5)
		lever = rl.Vector3{
			X: -normal.X * half.X,
			Y: -normal.Y * half.Y,
			Z: -normal.Z * half.Z,
		}
		scale = 500.0
	} else {
		return
	}
	torque := rl.Vector3CrossProduct(lever, impulse)
	rb.AngularVelocity = rl.Vector3Add(rb.AngularVelocity, rl.Vector3Scale(torque, scale/rb.Mass))
}

// resolveStatic pushes a dynamic body out of non-moving geometry and
// reflects its velocity.
func (w *World) resolveStatic(obj, static *engine.GameObject) {
	rb := engine.GetComponent[*components.Rigidbody](obj)
	if rb == nil || rb.IsSleeping {
		return
	}
	if w.pairExcluded(obj, static) {
		return
	}

	c, ok := findContact(obj, static)
	if !ok {
		return
	}
	w.recordCollision(obj, static)

	// Static doesn't move: push fully out
	obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, rl.Vector3Scale(c.normal, c.penetration))

	velAlongNormal := rl.Vector3DotProduct(rb.Velocity, c.normal)
	if velAlongNormal >= 0 {
		return
	}

	reflect := rl.Vector3Scale(c.normal, -2*velAlongNormal*rb.Bounciness)
	rb.Velocity = rl.Vector3Add(rb.Velocity, reflect)

	// Kill the normal component that bounciness didn't keep
	remaining := rl.Vector3DotProduct(rb.Velocity, c.normal)
	if remaining < 0 {
		rb.Velocity = rl.Vector3Subtract(rb.Velocity, rl.Vector3Scale(c.normal, remaining))
	}

	// Friction perpendicular to the contact
	rb.Velocity.X *= 1 - rb.Friction
	rb.Velocity.Z *= 1 - rb.Friction

	spinFromImpulse(rb, c.normal, reflect, obj)

	// Extra angular friction when resting on the ground
	if c.normal.Y > 0.5 {
		rb.AngularVelocity.X *= 1 - rb.Friction*0.5
		rb.AngularVelocity.Z *= 1 - rb.Friction*0.5
	}
}

// resolveKinematicPush lets a kinematic body (the player) shove dynamic
// bodies without being moved itself.
func (w *World) resolveKinematicPush(kin, obj *engine.GameObject) {
	rbKin := engine.GetComponent[*components.Rigidbody](kin)
	rbObj := engine.GetComponent[*components.Rigidbody](obj)
	if rbKin == nil || rbObj == nil {
		return
	}
	if w.pairExcluded(kin, obj) {
		return
	}

	c, ok := findContact(kin, obj)
	if !ok {
		return
	}
	w.recordCollision(kin, obj)

	obj.Transform.Position = rl.Vector3Subtract(obj.Transform.Position, rl.Vector3Scale(c.normal, c.penetration))

	kinVelAlongNormal := rl.Vector3DotProduct(rbKin.Velocity, c.normal)
	if kinVelAlongNormal > 0 {
		impulse := rl.Vector3Scale(c.normal, kinVelAlongNormal*1.5)
		rbObj.Velocity = rl.Vector3Subtract(rbObj.Velocity, impulse)
		rbObj.Wake()
	}
}

// resolveKinematicStatic stops a kinematic body at static geometry.
func (w *World) resolveKinematicStatic(kin, static *engine.GameObject) {
	if w.pairExcluded(kin, static) {
		return
	}
	c, ok := findContact(kin, static)
	if !ok {
		return
	}
	w.recordCollision(kin, static)
	kin.Transform.Position = rl.Vector3Add(kin.Transform.Position, rl.Vector3Scale(c.normal, c.penetration))
}
