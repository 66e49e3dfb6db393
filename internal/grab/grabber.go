package grab

import (
	"log"

	"gravgrab/internal/components"
	"gravgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Grabber lets the player pick up, carry, throw and punt rigidbodies with
// continuous force control. Held bodies stay fully simulated: they collide,
// get crushed and bounce while being steered toward the anchor.
//
// Input edges are fed in by the owner (PrimaryAction, SecondaryAction,
// AdjustHoldDistance); Update refreshes the passive hover highlight and
// FixedUpdate runs the anchor and the PD controller, in that order.
type Grabber struct {
	engine.BaseComponent

	// Tuning is shared with the overlay and the config watcher; values may
	// change between any two frames.
	Tuning *Tuning

	// OnPickup and OnRelease fire on hold session boundaries. OnRelease
	// fires for drops, throws and forced releases alike.
	OnPickup  engine.EventWithArg[*engine.GameObject]
	OnRelease engine.EventWithArg[*engine.GameObject]

	physics    PhysicsOps
	look       engine.LookProvider
	anchor     *Anchor
	selector   selector
	exclusions exclusionSet
	controller holdController

	held         *engine.GameObject
	heldBody     *components.Rigidbody
	snapshot     bodySnapshot
	holdDistance float32

	// Magnitudes applied on the latest tick, for the debug overlay.
	LastForce  float32
	LastTorque float32
}

func NewGrabber(physicsOps PhysicsOps, tuning *Tuning) *Grabber {
	g := &Grabber{
		Tuning:     tuning,
		physics:    physicsOps,
		anchor:     NewAnchor(),
		selector:   selector{physics: physicsOps, tuning: tuning},
		exclusions: exclusionSet{physics: physicsOps},
		controller: holdController{tuning: tuning},
	}
	g.holdDistance = (tuning.MinHoldDistance + tuning.MaxHoldDistance) / 2
	return g
}

// Start resolves the look provider. Required reference: without one the
// grabber stays inert rather than guessing a view.
func (g *Grabber) Start() {
	look, ok := engine.FindComponent[engine.LookProvider](g.GetGameObject())
	if !ok {
		log.Printf("grabber: %q has no look provider, grabber disabled", g.GetGameObject().Name)
		return
	}
	g.look = look
}

// view returns the controller pose: eye origin, look direction and the
// orientation whose forward is that direction.
func (g *Grabber) view() (origin, forward rl.Vector3, orientation rl.Quaternion) {
	origin = g.GetGameObject().WorldPosition()
	origin.Y += g.look.GetEyeHeight()
	x, y, z := g.look.GetLookDirection()
	forward = rl.Vector3{X: x, Y: y, Z: z}
	return origin, forward, lookRotation(forward, worldUp)
}

// Update runs at render rate: only the passive hover highlight, and only
// while nothing is held.
func (g *Grabber) Update(deltaTime float32) {
	if g.look == nil {
		return
	}
	if g.held != nil {
		return
	}
	origin, forward, _ := g.view()
	best, ok := g.selector.selectBest(origin, forward, g.Tuning.HighlightRange, g.GetGameObject())
	if ok {
		g.selector.updateHighlight(best.object)
	} else {
		g.selector.updateHighlight(nil)
	}
}

// FixedUpdate runs once per physics tick: advance the anchor first, then, if
// something is held, one PD evaluation.
func (g *Grabber) FixedUpdate(deltaTime float32) {
	if g.look == nil {
		return
	}
	origin, forward, orientation := g.view()
	g.anchor.Advance(origin, forward, orientation, g.holdDistance, deltaTime)

	if g.heldBody == nil {
		return
	}
	force, torque := g.controller.tick(g.anchor, g.held, g.heldBody, forward)
	g.LastForce = rl.Vector3Length(force)
	g.LastTorque = rl.Vector3Length(torque)
}

// PrimaryAction throws the held body, or punts whatever is ahead when
// nothing is held.
func (g *Grabber) PrimaryAction() {
	if g.look == nil {
		return
	}
	if g.held != nil {
		g.throwHeld()
	} else {
		g.punt()
	}
}

// SecondaryAction drops the held body, or tries to pick one up.
func (g *Grabber) SecondaryAction() {
	if g.look == nil {
		return
	}
	if g.held != nil {
		g.release()
	} else {
		g.pickup()
	}
}

// AdjustHoldDistance nudges the anchor distance along the view ray. Only
// meaningful while holding; always ends up inside the configured bounds.
func (g *Grabber) AdjustHoldDistance(delta float32) {
	if g.held == nil || delta == 0 {
		return
	}
	g.holdDistance = clampf(
		g.holdDistance+delta*g.Tuning.ScrollStep,
		g.Tuning.MinHoldDistance,
		g.Tuning.MaxHoldDistance,
	)
}

// Holding reports whether a body is currently held.
func (g *Grabber) Holding() bool {
	return g.held != nil
}

// HeldObject returns the held body's object, or nil.
func (g *Grabber) HeldObject() *engine.GameObject {
	return g.held
}

// HoldDistance returns the current anchor distance.
func (g *Grabber) HoldDistance() float32 {
	return g.holdDistance
}

// BeamSegment returns the endpoints of the visual beam, from just ahead of
// the eye to the held body's center of mass. ok is false while not holding.
func (g *Grabber) BeamSegment() (start, end rl.Vector3, ok bool) {
	if g.heldBody == nil {
		return rl.Vector3{}, rl.Vector3{}, false
	}
	origin, forward, _ := g.view()
	start = rl.Vector3Add(origin, rl.Vector3Scale(forward, 0.6))
	start.Y -= 0.15
	return start, g.heldBody.CenterOfMass(), true
}

// Deactivate synchronously ends any hold session: state restore, exclusion
// restore, highlight cleared. Safe to call when idle. No held state survives
// a deactivate/reactivate cycle.
func (g *Grabber) Deactivate() {
	if g.held != nil {
		g.release()
	}
	g.selector.clearHighlight()
}

// pickup probes for the best eligible candidate and opens a hold session:
// snapshot, held-tuning overrides, collision exclusions.
func (g *Grabber) pickup() {
	if g.held != nil {
		return // one body at a time
	}
	origin, forward, _ := g.view()
	cand, ok := g.selector.selectBest(origin, forward, g.Tuning.PickupRange, g.GetGameObject())
	if !ok {
		return
	}
	g.selector.clearHighlight()

	rb := cand.body
	g.snapshot = takeSnapshot(rb)

	// Held tuning: no gravity fighting the spring, heavy damping so the PD
	// gains don't ring, continuous collision + smoothing against tunneling
	// and jitter at close range.
	rb.UseGravity = false
	rb.LinearDamping = g.Tuning.HeldLinearDamping
	rb.AngularDamping = g.Tuning.HeldAngularDamping
	rb.CollisionMode = components.CollisionContinuous
	rb.Interpolation = components.InterpolateSmooth
	rb.Wake()

	g.exclusions.enable(g.GetGameObject(), cand.object)

	g.held = cand.object
	g.heldBody = rb
	g.holdDistance = clampf(cand.distance, g.Tuning.MinHoldDistance, g.Tuning.MaxHoldDistance)

	log.Printf("grabber: holding %q (mass %.0f, %d pairs excluded)", cand.object.Name, rb.Mass, g.exclusions.size())
	g.OnPickup.Invoke(cand.object)
}

// release closes the hold session: snapshot restored verbatim, exclusions
// reversed. Identical for drops and throws.
func (g *Grabber) release() {
	if g.held == nil {
		return
	}
	g.snapshot.applyTo(g.heldBody)
	g.exclusions.disable()

	released := g.held
	g.held = nil
	g.heldBody = nil
	g.LastForce = 0
	g.LastTorque = 0

	g.OnRelease.Invoke(released)
}

// throwHeld erases the controller-induced motion, launches the body along
// the view direction, then releases.
func (g *Grabber) throwHeld() {
	if g.heldBody == nil {
		return
	}
	_, forward, _ := g.view()
	g.heldBody.Velocity = rl.Vector3{}
	g.heldBody.AngularVelocity = rl.Vector3{}
	g.heldBody.ApplyVelocityChange(rl.Vector3Scale(forward, g.Tuning.ThrowImpulse))
	g.release()
}

// punt shoves the nearest non-kinematic body ahead without ever opening a
// hold session.
func (g *Grabber) punt() {
	origin, forward, _ := g.view()
	hits := g.physics.SphereCastAll(origin, forward, g.Tuning.ProbeRadius, g.Tuning.PuntRange, maxProbeHits)

	var target *components.Rigidbody
	closest := g.Tuning.PuntRange
	for _, hit := range hits {
		if hit.GameObject == g.GetGameObject() {
			continue
		}
		rb := engine.GetComponent[*components.Rigidbody](hit.GameObject)
		if rb == nil || rb.IsKinematic {
			continue
		}
		if hit.Distance <= closest {
			closest = hit.Distance
			target = rb
		}
	}
	if target == nil {
		return
	}
	target.ApplyVelocityChange(rl.Vector3Scale(forward, g.Tuning.PuntImpulse))
}
