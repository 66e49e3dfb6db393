package grab

import (
	"gravgrab/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PhysicsOps is the slice of the physics engine the grab subsystem consumes:
// probing for candidates and toggling broadphase pair exclusions. Body-level
// capabilities (damping, gravity, impulses) live on the Rigidbody itself.
type PhysicsOps interface {
	Raycast(origin, direction rl.Vector3, maxDistance float32) (physics.CastHit, bool)
	SphereCastAll(origin, direction rl.Vector3, radius, maxDistance float32, maxHits int) []physics.CastHit
	SetPairIgnored(a, b uint64, ignore bool)
	PairIgnored(a, b uint64) bool
}
