package engine

import (
	"math"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

// RotationMatrix builds the rotation matrix for this transform.
// Rotation order is X, then Y, then Z - the same convention the renderer uses.
func (t Transform) RotationMatrix() rl.Matrix {
	rx := rl.MatrixRotateX(t.Rotation.X * rl.Deg2rad)
	ry := rl.MatrixRotateY(t.Rotation.Y * rl.Deg2rad)
	rz := rl.MatrixRotateZ(t.Rotation.Z * rl.Deg2rad)
	return rl.MatrixMultiply(rl.MatrixMultiply(rx, ry), rz)
}

// Quaternion returns the orientation of this transform as a quaternion.
func (t Transform) Quaternion() rl.Quaternion {
	return rl.QuaternionFromMatrix(t.RotationMatrix())
}

var nextUID uint64

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    atomic.AddUint64(&nextUID, 1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
}

// GetComponent returns the first component matching the concrete type T, or
// the zero value when the object has none.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// FindComponent returns the first component implementing interface T,
// checking this object and then its parents.
func FindComponent[T any](g *GameObject) (T, bool) {
	var zero T
	for obj := g; obj != nil; obj = obj.Parent {
		for _, c := range obj.components {
			if typed, ok := c.(T); ok {
				return typed, true
			}
		}
	}
	return zero, false
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

// FixedUpdate runs all FixedUpdater components once. Called by the game loop
// at the fixed physics rate, before the physics world steps.
func (g *GameObject) FixedUpdate(deltaTime float32) {
	if !g.Active {
		return
	}
	for _, c := range g.components {
		if f, ok := c.(FixedUpdater); ok {
			f.FixedUpdate(deltaTime)
		}
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentPos := g.Parent.WorldPosition()
	parentScale := g.Parent.WorldScale()

	scaled := rl.Vector3{
		X: g.Transform.Position.X * parentScale.X,
		Y: g.Transform.Position.Y * parentScale.Y,
		Z: g.Transform.Position.Z * parentScale.Z,
	}

	rotated := rl.Vector3Transform(scaled, Transform{Rotation: g.Parent.WorldRotation()}.RotationMatrix())
	return rl.Vector3Add(parentPos, rotated)
}

func (g *GameObject) WorldRotation() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.Vector3Add(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}

// Forward returns the unit vector the object's rotation points along +Z.
func (g *GameObject) Forward() rl.Vector3 {
	yaw := float64(g.Transform.Rotation.Y) * math.Pi / 180
	pitch := float64(g.Transform.Rotation.X) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Sin(yaw) * math.Cos(pitch)),
		Y: float32(-math.Sin(pitch)),
		Z: float32(math.Cos(yaw) * math.Cos(pitch)),
	}
}
