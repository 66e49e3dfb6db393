package grab

import (
	"testing"

	"gravgrab/internal/components"
	"gravgrab/internal/engine"
	"gravgrab/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// scriptedLook lets tests aim the grabber without input devices.
type scriptedLook struct {
	engine.BaseComponent
	dir rl.Vector3
}

func (l *scriptedLook) GetLookDirection() (x, y, z float32) {
	d := rl.Vector3Normalize(l.dir)
	return d.X, d.Y, d.Z
}

func (l *scriptedLook) GetEyeHeight() float32 { return 1.7 }

type rig struct {
	world   *physics.World
	player  *engine.GameObject
	look    *scriptedLook
	grabber *Grabber
	tuning  *Tuning
}

func newRig() *rig {
	world := physics.NewWorld()
	tuning := DefaultTuning()

	player := engine.NewGameObject("Player")
	look := &scriptedLook{dir: rl.Vector3{Z: -1}}
	player.AddComponent(look)
	player.AddComponent(components.NewBoxCollider(rl.Vector3{X: 0.6, Y: 1.8, Z: 0.6}))

	rb := components.NewRigidbody()
	rb.IsKinematic = true
	rb.UseGravity = false
	player.AddComponent(rb)

	grabber := NewGrabber(world, &tuning)
	player.AddComponent(grabber)
	world.AddObject(player)
	player.Start()

	return &rig{world: world, player: player, look: look, grabber: grabber, tuning: &tuning}
}

// spawnCrate puts a dynamic box at eye height straight down the test rig's
// default view ray.
func (r *rig) spawnCrate(name string, pos rl.Vector3, mass float32) (*engine.GameObject, *components.Rigidbody) {
	crate := engine.NewGameObject(name)
	crate.Transform.Position = pos
	crate.AddComponent(components.NewBoxCollider(rl.Vector3{X: 1, Y: 1, Z: 1}))
	rb := components.NewRigidbody()
	rb.Mass = mass
	crate.AddComponent(rb)
	r.world.AddObject(crate)
	return crate, rb
}

func TestPickupAppliesHeldTuning(t *testing.T) {
	r := newRig()
	crate, rb := r.spawnCrate("Crate", rl.Vector3{Y: 1.7, Z: -6}, 40)

	r.grabber.SecondaryAction()

	if !r.grabber.Holding() || r.grabber.HeldObject() != crate {
		t.Fatal("Expected the crate to be held")
	}
	if rb.UseGravity {
		t.Error("Held body must not fall")
	}
	if rb.LinearDamping != r.tuning.HeldLinearDamping || rb.AngularDamping != r.tuning.HeldAngularDamping {
		t.Error("Held damping overrides not applied")
	}
	if rb.CollisionMode != components.CollisionContinuous {
		t.Error("Held body should use continuous collision")
	}
	if rb.Interpolation != components.InterpolateSmooth {
		t.Error("Held body should render interpolated")
	}
	if r.world.IgnoredPairCount() == 0 {
		t.Error("Holder/held collider pairs should be excluded")
	}
}

func TestPickupInitialHoldDistanceFromHit(t *testing.T) {
	r := newRig()
	r.spawnCrate("Crate", rl.Vector3{Y: 1.7, Z: -6}, 40)

	r.grabber.SecondaryAction()

	// Box face at z=-5.5, inflated by the 0.6 probe: first contact at 4.9
	if absDiff(r.grabber.HoldDistance(), 4.9) > 0.05 {
		t.Errorf("Expected hold distance ~4.9, got %.2f", r.grabber.HoldDistance())
	}
}

func TestPickupRejectsHeavyBody(t *testing.T) {
	r := newRig()
	_, rb := r.spawnCrate("Safe", rl.Vector3{Y: 1.7, Z: -6}, 200)

	r.grabber.SecondaryAction()

	if r.grabber.Holding() {
		t.Fatal("A 200kg body is over the pickup limit")
	}
	if !rb.UseGravity || r.world.IgnoredPairCount() != 0 {
		t.Error("A rejected body must be left untouched")
	}
}

func TestPickupWhileHoldingIsRejected(t *testing.T) {
	r := newRig()
	r.spawnCrate("First", rl.Vector3{Y: 1.7, Z: -6}, 40)
	r.spawnCrate("Second", rl.Vector3{Y: 1.7, Z: -3}, 40)

	r.grabber.SecondaryAction()
	held := r.grabber.HeldObject()
	if held == nil {
		t.Fatal("Expected a hold")
	}

	// Direct pickup attempt while holding must change nothing
	r.grabber.pickup()
	if r.grabber.HeldObject() != held {
		t.Error("Pickup while holding must not swap the held body")
	}
}

func TestDropRestoresSnapshot(t *testing.T) {
	r := newRig()
	_, rb := r.spawnCrate("Crate", rl.Vector3{Y: 1.7, Z: -6}, 40)
	rb.LinearDamping = 0.7
	rb.AngularDamping = 0.2
	rb.Constraints = components.FreezeRotationY

	r.grabber.SecondaryAction()
	r.grabber.SecondaryAction() // drop

	if r.grabber.Holding() {
		t.Fatal("Expected the body to be released")
	}
	if !rb.UseGravity {
		t.Error("Gravity should be restored")
	}
	if rb.LinearDamping != 0.7 || rb.AngularDamping != 0.2 {
		t.Error("Damping should be restored to pre-grab values")
	}
	if rb.Constraints != components.FreezeRotationY {
		t.Error("Constraints should be restored")
	}
	if rb.CollisionMode != components.CollisionDiscrete {
		t.Error("Collision mode should be restored")
	}
	if r.world.IgnoredPairCount() != 0 {
		t.Error("Exclusions should be removed on release")
	}
}

func TestReleaseKeepsPreexistingExclusions(t *testing.T) {
	r := newRig()
	crate, _ := r.spawnCrate("Crate", rl.Vector3{Y: 1.7, Z: -6}, 40)

	playerCol := engine.GetComponent[*components.BoxCollider](r.player)
	crateCol := engine.GetComponent[*components.BoxCollider](crate)
	r.world.SetPairIgnored(playerCol.ColliderID(), crateCol.ColliderID(), true)

	r.grabber.SecondaryAction()
	r.grabber.SecondaryAction()

	if !r.world.PairIgnored(playerCol.ColliderID(), crateCol.ColliderID()) {
		t.Error("An exclusion that predates the hold must survive the release")
	}
}

func TestDropRetainsVelocity(t *testing.T) {
	r := newRig()
	_, rb := r.spawnCrate("Crate", rl.Vector3{Y: 1.7, Z: -6}, 40)

	r.grabber.SecondaryAction()
	rb.Velocity = rl.Vector3{X: 2, Y: 1}
	r.grabber.SecondaryAction()

	if rb.Velocity != (rl.Vector3{X: 2, Y: 1}) {
		t.Errorf("Drop must not alter velocity, got %+v", rb.Velocity)
	}
}

func TestThrowLaunchesAlongView(t *testing.T) {
	r := newRig()
	crate, rb := r.spawnCrate("Crate", rl.Vector3{Y: 1.7, Z: -6}, 40)

	var released *engine.GameObject
	r.grabber.OnRelease.AddListener(func(obj *engine.GameObject) { released = obj })

	r.grabber.SecondaryAction()
	// Residual controller motion is wiped before the impulse
	rb.Velocity = rl.Vector3{X: 5, Y: -3}
	rb.AngularVelocity = rl.Vector3{Y: 400}

	r.grabber.PrimaryAction()

	if r.grabber.Holding() {
		t.Fatal("Throw must release the body")
	}
	if released != crate {
		t.Error("OnRelease should fire with the thrown body")
	}
	want := rl.Vector3{Z: -r.tuning.ThrowImpulse}
	if absDiff(rb.Velocity.X, want.X) > 1e-4 || absDiff(rb.Velocity.Z, want.Z) > 1e-4 {
		t.Errorf("Expected throw velocity %+v, got %+v", want, rb.Velocity)
	}
	if rb.AngularVelocity != (rl.Vector3{}) {
		t.Error("Throw should zero residual spin")
	}
	if !rb.UseGravity {
		t.Error("Thrown body should regain gravity")
	}
}

func TestPuntWithoutHolding(t *testing.T) {
	r := newRig()
	_, rb := r.spawnCrate("Crate", rl.Vector3{Y: 1.7, Z: -6}, 200) // too heavy to hold, fine to punt

	r.grabber.PrimaryAction()

	if r.grabber.Holding() {
		t.Fatal("Punt must never start a hold")
	}
	if absDiff(rb.Velocity.Z, -r.tuning.PuntImpulse) > 1e-4 {
		t.Errorf("Expected punt velocity %.1f, got %.2f", -r.tuning.PuntImpulse, rb.Velocity.Z)
	}
	if r.world.IgnoredPairCount() != 0 {
		t.Error("Punt must not touch exclusions")
	}
}

func TestAdjustHoldDistanceClamped(t *testing.T) {
	r := newRig()
	r.spawnCrate("Crate", rl.Vector3{Y: 1.7, Z: -6}, 40)

	// Not holding: a no-op
	before := r.grabber.HoldDistance()
	r.grabber.AdjustHoldDistance(5)
	if r.grabber.HoldDistance() != before {
		t.Error("Adjusting while not holding should do nothing")
	}

	r.grabber.SecondaryAction()

	r.grabber.AdjustHoldDistance(1000)
	if r.grabber.HoldDistance() != r.tuning.MaxHoldDistance {
		t.Errorf("Expected clamp at %.1f, got %.2f", r.tuning.MaxHoldDistance, r.grabber.HoldDistance())
	}
	r.grabber.AdjustHoldDistance(-1000)
	if r.grabber.HoldDistance() != r.tuning.MinHoldDistance {
		t.Errorf("Expected clamp at %.1f, got %.2f", r.tuning.MinHoldDistance, r.grabber.HoldDistance())
	}
}

func TestFixedUpdateDrivesHeldBody(t *testing.T) {
	r := newRig()
	_, rb := r.spawnCrate("Crate", rl.Vector3{Y: 1.7, Z: -6}, 40)

	r.grabber.SecondaryAction()
	r.grabber.AdjustHoldDistance(-1000) // drag the anchor close: big position error

	r.player.FixedUpdate(1.0 / 60.0)

	if r.grabber.LastForce <= 0 {
		t.Fatal("Holding should apply a force every tick")
	}
	if rl.Vector3Length(rb.Force) == 0 {
		t.Error("Force should be queued on the body for the next step")
	}
	// Anchor is pulled close, so the spring pulls the crate toward the player
	if rb.Force.Z <= 0 {
		t.Errorf("Expected force toward the player (+Z), got %+v", rb.Force)
	}
}

func TestFixedUpdateIdleAppliesNothing(t *testing.T) {
	r := newRig()
	_, rb := r.spawnCrate("Crate", rl.Vector3{Y: 1.7, Z: -6}, 40)

	r.player.FixedUpdate(1.0 / 60.0)

	if r.grabber.LastForce != 0 || rl.Vector3Length(rb.Force) != 0 {
		t.Error("Nothing held: no forces anywhere")
	}
}

func TestDeactivateReleasesHeld(t *testing.T) {
	r := newRig()
	_, rb := r.spawnCrate("Crate", rl.Vector3{Y: 1.7, Z: -6}, 40)

	r.grabber.SecondaryAction()
	r.grabber.Deactivate()

	if r.grabber.Holding() {
		t.Fatal("Deactivate must end the hold")
	}
	if !rb.UseGravity || r.world.IgnoredPairCount() != 0 {
		t.Error("Deactivate must run the full release path")
	}

	// Deactivating while idle is safe
	r.grabber.Deactivate()
}

func TestPickupFiresEvent(t *testing.T) {
	r := newRig()
	crate, _ := r.spawnCrate("Crate", rl.Vector3{Y: 1.7, Z: -6}, 40)

	var picked *engine.GameObject
	r.grabber.OnPickup.AddListener(func(obj *engine.GameObject) { picked = obj })

	r.grabber.SecondaryAction()

	if picked != crate {
		t.Error("OnPickup should fire with the held body")
	}
}
