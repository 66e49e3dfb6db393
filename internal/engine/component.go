package engine

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// FixedUpdater is implemented by components that run on the fixed physics
// tick in addition to the variable-rate Update. FixedUpdate is called once
// per tick, before the physics world integrates.
type FixedUpdater interface {
	FixedUpdate(deltaTime float32)
}

// LookProvider is implemented by components that control camera look direction.
// Used by Camera and by anything that needs to aim along the player's view.
type LookProvider interface {
	GetLookDirection() (x, y, z float32)
	GetEyeHeight() float32
}

// CollisionHandler is implemented by components that want to receive collision callbacks.
type CollisionHandler interface {
	OnCollisionEnter(other *GameObject)
	OnCollisionExit(other *GameObject)
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
