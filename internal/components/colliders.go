package components

import (
	"sync/atomic"

	"gravgrab/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Collider is the surface-level identity the physics world keys collision
// bookkeeping (ignored pairs, callbacks) on. IDs are unique per collider,
// stable for the collider's lifetime.
type Collider interface {
	engine.Component
	ColliderID() uint64
	GetCenter() rl.Vector3
}

var nextColliderID uint64

func newColliderID() uint64 {
	return atomic.AddUint64(&nextColliderID, 1)
}

type BoxCollider struct {
	engine.BaseComponent
	Size   rl.Vector3
	Offset rl.Vector3
	id     uint64
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{
		Size: size,
		id:   newColliderID(),
	}
}

func (b *BoxCollider) ColliderID() uint64 {
	return b.id
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	return rl.Vector3Add(b.GetGameObject().WorldPosition(), b.Offset)
}

// GetWorldSize returns the collider size scaled by the object's world scale
func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	s := b.GetGameObject().WorldScale()
	return rl.Vector3{X: b.Size.X * s.X, Y: b.Size.Y * s.Y, Z: b.Size.Z * s.Z}
}

type SphereCollider struct {
	engine.BaseComponent
	Radius float32
	Offset rl.Vector3
	id     uint64
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{
		Radius: radius,
		id:     newColliderID(),
	}
}

func (s *SphereCollider) ColliderID() uint64 {
	return s.id
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	return rl.Vector3Add(s.GetGameObject().WorldPosition(), s.Offset)
}

// CollidersUnder collects every collider on the object and its children,
// depth-first. Order is deterministic: component order, then child order.
func CollidersUnder(root *engine.GameObject) []Collider {
	var out []Collider
	var walk func(g *engine.GameObject)
	walk = func(g *engine.GameObject) {
		for _, c := range g.Components() {
			if col, ok := c.(Collider); ok {
				out = append(out, col)
			}
		}
		for _, child := range g.Children {
			walk(child)
		}
	}
	walk(root)
	return out
}
