package components

import (
	"gravgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.3 // units/sec - below this, object might sleep
	SleepAngularThreshold  = 1.0 // deg/sec - below this, object might sleep
	SleepTimeThreshold     = 0.3 // seconds of low velocity before sleeping
)

// ConstraintFlags freeze individual motion axes during integration.
type ConstraintFlags uint8

const (
	FreezePositionX ConstraintFlags = 1 << iota
	FreezePositionY
	FreezePositionZ
	FreezeRotationX
	FreezeRotationY
	FreezeRotationZ

	FreezePosition = FreezePositionX | FreezePositionY | FreezePositionZ
	FreezeRotation = FreezeRotationX | FreezeRotationY | FreezeRotationZ
	FreezeNone     ConstraintFlags = 0
)

// CollisionMode selects how aggressively the integrator guards against
// tunneling. Continuous bodies move in capped substeps.
type CollisionMode int

const (
	CollisionDiscrete CollisionMode = iota
	CollisionContinuous
)

// InterpolationMode controls how the renderer samples a body's pose
// between physics ticks.
type InterpolationMode int

const (
	InterpolateNone InterpolationMode = iota
	InterpolateSmooth
)

type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // degrees per second on each axis
	Mass            float32
	Bounciness      float32 // 0 = no bounce, 1 = perfect bounce
	Friction        float32 // 0 = ice, 1 = stops immediately
	LinearDamping   float32 // per-second drag coefficient
	AngularDamping  float32 // per-second drag coefficient
	UseGravity      bool
	IsKinematic     bool // moves but doesn't get pushed by physics
	Constraints     ConstraintFlags
	CollisionMode   CollisionMode
	Interpolation   InterpolationMode

	// Force and Torque accumulate over one physics tick and are cleared by
	// the world after integration. Torque is in radians-basis units.
	Force  rl.Vector3
	Torque rl.Vector3

	// Sleep state - sleeping objects skip physics simulation
	IsSleeping bool
	sleepTimer float32
	CanSleep   bool

	// Pose at the start of the last physics tick, recorded by the world.
	// Renderers blend from here when Interpolation is InterpolateSmooth.
	prevPosition rl.Vector3
}

func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass:           1.0,
		Bounciness:     0.5,
		Friction:       0.1,
		LinearDamping:  0.0,
		AngularDamping: 0.05,
		UseGravity:     true,
		IsKinematic:    false,
		CollisionMode:  CollisionDiscrete,
		Interpolation:  InterpolateNone,
		CanSleep:       true,
	}
}

// AddForce accumulates a continuous force for the current tick.
func (r *Rigidbody) AddForce(f rl.Vector3) {
	r.Force = rl.Vector3Add(r.Force, f)
	r.Wake()
}

// AddTorque accumulates a continuous torque for the current tick.
func (r *Rigidbody) AddTorque(t rl.Vector3) {
	r.Torque = rl.Vector3Add(r.Torque, t)
	r.Wake()
}

// ApplyVelocityChange applies a mass-independent impulse: the body's linear
// velocity changes by exactly dv.
func (r *Rigidbody) ApplyVelocityChange(dv rl.Vector3) {
	r.Velocity = rl.Vector3Add(r.Velocity, dv)
	r.Wake()
}

// ApplyAngularVelocityChange applies a mass-independent angular impulse,
// in degrees per second.
func (r *Rigidbody) ApplyAngularVelocityChange(dw rl.Vector3) {
	r.AngularVelocity = rl.Vector3Add(r.AngularVelocity, dw)
	r.Wake()
}

// CenterOfMass returns the world-space point forces act through.
func (r *Rigidbody) CenterOfMass() rl.Vector3 {
	return r.GetGameObject().WorldPosition()
}

// PrevPosition returns the body's position at the start of the last tick.
func (r *Rigidbody) PrevPosition() rl.Vector3 {
	return r.prevPosition
}

// RecordPrevPosition is called by the physics world before integrating.
func (r *Rigidbody) RecordPrevPosition(p rl.Vector3) {
	r.prevPosition = p
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// TrySleep checks if the rigidbody should go to sleep based on velocity
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping {
		return
	}

	speed := rl.Vector3Length(r.Velocity)
	angSpeed := rl.Vector3Length(r.AngularVelocity)

	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		r.sleepTimer += deltaTime

		// Extra damping when nearly at rest to reduce jitter
		dampFactor := float32(0.9)
		r.Velocity = rl.Vector3Scale(r.Velocity, dampFactor)
		r.AngularVelocity = rl.Vector3Scale(r.AngularVelocity, dampFactor)

		if r.sleepTimer >= SleepTimeThreshold {
			r.IsSleeping = true
			r.Velocity = rl.Vector3{}
			r.AngularVelocity = rl.Vector3{}
		}
	} else {
		r.sleepTimer = 0
	}
}
