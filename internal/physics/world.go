package physics

import (
	"gravgrab/internal/components"
	"gravgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spatial grid cell size - objects within same or neighboring cells are checked
const cellSize = 5.0

// Largest distance a continuous-collision body may travel in one substep.
// Derived from the smallest collider we spawn; keeps fast bodies from
// skipping through thin geometry.
const maxContinuousStep = 0.25

type cellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) cellKey {
	return cellKey{
		X: int(pos.X / cellSize),
		Y: int(pos.Y / cellSize),
		Z: int(pos.Z / cellSize),
	}
}

// PairKey identifies an unordered pair of collider IDs. The same two
// colliders always map to the same key regardless of argument order.
type PairKey struct {
	Lo, Hi uint64
}

// MakePairKey builds the canonical key for two collider IDs.
func MakePairKey(a, b uint64) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

// objPair identifies an unordered pair of objects, for collision callbacks.
type objPair struct {
	a, b uint64
}

func makeObjPair(a, b *engine.GameObject) objPair {
	if a.UID > b.UID {
		a, b = b, a
	}
	return objPair{a: a.UID, b: b.UID}
}

type World struct {
	Gravity    rl.Vector3
	Objects    []*engine.GameObject // dynamic rigidbodies
	Kinematics []*engine.GameObject // kinematic rigidbodies (player, moving platforms)
	Statics    []*engine.GameObject // no rigidbody (walls, floor)
	grid       map[cellKey][]*engine.GameObject

	// Broadphase exclusions, keyed by canonical collider-ID pair.
	ignored map[PairKey]struct{}

	// Collision tracking for enter/exit callbacks
	activeCollisions  map[objPair][2]*engine.GameObject
	currentCollisions map[objPair][2]*engine.GameObject
}

func NewWorld() *World {
	return &World{
		Gravity:           rl.Vector3{Y: -20.0},
		grid:              make(map[cellKey][]*engine.GameObject),
		ignored:           make(map[PairKey]struct{}),
		activeCollisions:  make(map[objPair][2]*engine.GameObject),
		currentCollisions: make(map[objPair][2]*engine.GameObject),
	}
}

func (w *World) AddObject(g *engine.GameObject) {
	rb := engine.GetComponent[*components.Rigidbody](g)
	if rb == nil {
		w.Statics = append(w.Statics, g)
	} else if rb.IsKinematic {
		w.Kinematics = append(w.Kinematics, g)
	} else {
		w.Objects = append(w.Objects, g)
	}
}

func (w *World) RemoveObject(g *engine.GameObject) {
	for _, list := range []*[]*engine.GameObject{&w.Objects, &w.Kinematics, &w.Statics} {
		for i, obj := range *list {
			if obj == g {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

// SetPairIgnored marks or unmarks two colliders as mutually non-colliding.
// Adding an already-ignored pair or removing a non-ignored one is a no-op.
func (w *World) SetPairIgnored(a, b uint64, ignore bool) {
	key := MakePairKey(a, b)
	if ignore {
		w.ignored[key] = struct{}{}
	} else {
		delete(w.ignored, key)
	}
}

// PairIgnored reports whether the two colliders are currently excluded.
func (w *World) PairIgnored(a, b uint64) bool {
	_, ok := w.ignored[MakePairKey(a, b)]
	return ok
}

// IgnoredPairCount returns the size of the exclusion set.
func (w *World) IgnoredPairCount() int {
	return len(w.ignored)
}

// pairExcluded reports whether any collider of a is excluded against any
// collider of b. With one collider per object this is a single lookup.
func (w *World) pairExcluded(a, b *engine.GameObject) bool {
	if len(w.ignored) == 0 {
		return false
	}
	for _, ca := range components.CollidersUnder(a) {
		for _, cb := range components.CollidersUnder(b) {
			if w.PairIgnored(ca.ColliderID(), cb.ColliderID()) {
				return true
			}
		}
	}
	return false
}

// Step advances the simulation by one fixed tick: integrate, detect,
// resolve, dispatch callbacks.
func (w *World) Step(deltaTime float32) {
	w.currentCollisions = make(map[objPair][2]*engine.GameObject)

	for _, obj := range w.Objects {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || rb.IsSleeping {
			continue
		}
		w.integrate(obj, rb, deltaTime)
	}

	// Broadphase via spatial hashing, narrowphase per unique pair
	w.rebuildGrid()
	checked := make(map[objPair]bool)
	for _, obj := range w.Objects {
		for _, other := range w.neighborsOf(obj) {
			if obj == other {
				continue
			}
			key := makeObjPair(obj, other)
			if checked[key] {
				continue
			}
			checked[key] = true
			w.resolveDynamicPair(obj, other)
		}
	}

	// Kinematic bodies push dynamic ones and stop at statics
	for _, kin := range w.Kinematics {
		for _, obj := range w.Objects {
			w.resolveKinematicPush(kin, obj)
		}
		for _, static := range w.Statics {
			w.resolveKinematicStatic(kin, static)
		}
	}

	// Dynamic vs static
	for _, obj := range w.Objects {
		for _, static := range w.Statics {
			w.resolveStatic(obj, static)
		}
	}

	w.dispatchCollisionCallbacks()
}

// integrate applies accumulated forces, gravity, damping and constraints,
// then advances the pose.
func (w *World) integrate(obj *engine.GameObject, rb *components.Rigidbody, dt float32) {
	rb.RecordPrevPosition(obj.Transform.Position)

	if rb.Mass > 0 {
		accel := rl.Vector3Scale(rb.Force, dt/rb.Mass)
		rb.Velocity = rl.Vector3Add(rb.Velocity, accel)

		// Unit inertia per unit mass; torque is radians-basis, angular
		// velocity is stored in degrees.
		angAccel := rl.Vector3Scale(rb.Torque, dt*rl.Rad2deg/rb.Mass)
		rb.AngularVelocity = rl.Vector3Add(rb.AngularVelocity, angAccel)
	}
	rb.Force = rl.Vector3{}
	rb.Torque = rl.Vector3{}

	if rb.UseGravity {
		rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(w.Gravity, dt))
	}

	// Per-second drag, stable for any dt
	if rb.LinearDamping > 0 {
		rb.Velocity = rl.Vector3Scale(rb.Velocity, 1/(1+rb.LinearDamping*dt))
	}
	if rb.AngularDamping > 0 {
		rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, 1/(1+rb.AngularDamping*dt))
	}

	applyConstraints(rb)

	// Position: continuous bodies move in capped substeps so one tick can't
	// carry them through thin geometry.
	move := rl.Vector3Scale(rb.Velocity, dt)
	steps := 1
	if rb.CollisionMode == components.CollisionContinuous {
		if dist := rl.Vector3Length(move); dist > maxContinuousStep {
			steps = int(dist/maxContinuousStep) + 1
		}
	}
	sub := rl.Vector3Scale(move, 1/float32(steps))
	for i := 0; i < steps; i++ {
		obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, sub)
		if steps > 1 {
			for _, static := range w.Statics {
				w.resolveStatic(obj, static)
			}
		}
	}

	obj.Transform.Rotation = rl.Vector3Add(
		obj.Transform.Rotation,
		rl.Vector3Scale(rb.AngularVelocity, dt),
	)

	rb.TrySleep(dt)
}

func applyConstraints(rb *components.Rigidbody) {
	if rb.Constraints&components.FreezePositionX != 0 {
		rb.Velocity.X = 0
	}
	if rb.Constraints&components.FreezePositionY != 0 {
		rb.Velocity.Y = 0
	}
	if rb.Constraints&components.FreezePositionZ != 0 {
		rb.Velocity.Z = 0
	}
	if rb.Constraints&components.FreezeRotationX != 0 {
		rb.AngularVelocity.X = 0
	}
	if rb.Constraints&components.FreezeRotationY != 0 {
		rb.AngularVelocity.Y = 0
	}
	if rb.Constraints&components.FreezeRotationZ != 0 {
		rb.AngularVelocity.Z = 0
	}
}

// rebuildGrid clears and repopulates the spatial hash grid
func (w *World) rebuildGrid() {
	for k := range w.grid {
		delete(w.grid, k)
	}
	for _, obj := range w.Objects {
		cell := posToCell(obj.Transform.Position)
		w.grid[cell] = append(w.grid[cell], obj)
	}
}

// neighborsOf returns all objects in the same cell and the 26 neighboring cells
func (w *World) neighborsOf(obj *engine.GameObject) []*engine.GameObject {
	cell := posToCell(obj.Transform.Position)
	var neighbors []*engine.GameObject
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				key := cellKey{cell.X + dx, cell.Y + dy, cell.Z + dz}
				neighbors = append(neighbors, w.grid[key]...)
			}
		}
	}
	return neighbors
}

// recordCollision marks a pair as touching this tick and wakes sleepers when
// the relative velocity is significant.
func (w *World) recordCollision(a, b *engine.GameObject) {
	w.currentCollisions[makeObjPair(a, b)] = [2]*engine.GameObject{a, b}

	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil {
		return
	}

	relVel := rl.Vector3Subtract(rbA.Velocity, rbB.Velocity)
	if rl.Vector3Length(relVel) > components.SleepVelocityThreshold*2 {
		if rbA.IsSleeping {
			rbA.Wake()
		}
		if rbB.IsSleeping {
			rbB.Wake()
		}
	}
}

// dispatchCollisionCallbacks sends OnCollisionEnter/Exit to handlers by
// diffing the last two ticks' pair sets.
func (w *World) dispatchCollisionCallbacks() {
	for key, pair := range w.currentCollisions {
		if _, was := w.activeCollisions[key]; !was {
			notifyCollision(pair[0], pair[1], true)
			notifyCollision(pair[1], pair[0], true)
		}
	}
	for key, pair := range w.activeCollisions {
		if _, still := w.currentCollisions[key]; !still {
			notifyCollision(pair[0], pair[1], false)
			notifyCollision(pair[1], pair[0], false)
		}
	}
	w.activeCollisions = w.currentCollisions
}

func notifyCollision(obj, other *engine.GameObject, enter bool) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			if enter {
				handler.OnCollisionEnter(other)
			} else {
				handler.OnCollisionExit(other)
			}
		}
	}
}
