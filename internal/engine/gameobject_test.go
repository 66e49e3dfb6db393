package engine

import "testing"

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}

	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}

	if obj.components == nil {
		t.Error("components slice should be initialized")
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	obj1 := NewGameObject("First")
	obj2 := NewGameObject("Second")
	obj3 := NewGameObject("Third")

	if obj1.UID == obj2.UID || obj2.UID == obj3.UID || obj1.UID == obj3.UID {
		t.Error("GameObjects should have unique UIDs")
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"prop", "heavy"}

	if !obj.HasTag("prop") {
		t.Error("HasTag should return true for existing tag")
	}

	if obj.HasTag("player") {
		t.Error("HasTag should return false for non-existent tag")
	}

	obj2 := NewGameObject("Test2")
	if obj2.HasTag("anything") {
		t.Error("HasTag should return false when Tags is nil/empty")
	}
}

func TestGameObjectParentChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")

	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("Child.Parent should be set")
	}

	if len(parent.Children) != 1 {
		t.Errorf("Expected 1 child, got %d", len(parent.Children))
	}

	parent.RemoveChild(child)

	if len(parent.Children) != 0 {
		t.Errorf("Expected 0 children after removal, got %d", len(parent.Children))
	}

	if child.Parent != nil {
		t.Error("Removed child should have nil parent")
	}
}

func TestGameObjectGetComponent(t *testing.T) {
	obj := NewGameObject("Test")
	comp := &BaseComponent{}

	obj.AddComponent(comp)

	if len(obj.components) != 1 {
		t.Errorf("Expected 1 component, got %d", len(obj.components))
	}

	found := GetComponent[*BaseComponent](obj)
	if found != comp {
		t.Error("GetComponent failed to find component")
	}
}

type lookStub struct {
	BaseComponent
}

func (l *lookStub) GetLookDirection() (x, y, z float32) { return 0, 0, 1 }
func (l *lookStub) GetEyeHeight() float32               { return 1.7 }

func TestFindComponentWalksParents(t *testing.T) {
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")
	parent.AddChild(child)

	look := &lookStub{}
	parent.AddComponent(look)

	found, ok := FindComponent[LookProvider](child)
	if !ok {
		t.Fatal("FindComponent should find the interface on a parent")
	}
	if found != LookProvider(look) {
		t.Error("FindComponent returned the wrong component")
	}

	orphan := NewGameObject("Orphan")
	if _, ok := FindComponent[LookProvider](orphan); ok {
		t.Error("FindComponent should report false when nothing implements the interface")
	}
}

type tickCounter struct {
	BaseComponent
	updates      int
	fixedUpdates int
}

func (c *tickCounter) Update(deltaTime float32)      { c.updates++ }
func (c *tickCounter) FixedUpdate(deltaTime float32) { c.fixedUpdates++ }

func TestGameObjectFixedUpdateDispatch(t *testing.T) {
	obj := NewGameObject("Test")
	counter := &tickCounter{}
	obj.AddComponent(counter)
	obj.AddComponent(&BaseComponent{}) // no FixedUpdater, must be skipped

	obj.FixedUpdate(1.0 / 60.0)
	obj.FixedUpdate(1.0 / 60.0)

	if counter.fixedUpdates != 2 {
		t.Errorf("Expected 2 fixed updates, got %d", counter.fixedUpdates)
	}
	if counter.updates != 0 {
		t.Errorf("FixedUpdate must not call Update, got %d calls", counter.updates)
	}

	obj.Active = false
	obj.FixedUpdate(1.0 / 60.0)
	if counter.fixedUpdates != 2 {
		t.Error("Inactive objects should not receive FixedUpdate")
	}
}

func TestGameObjectStartCalledOnce(t *testing.T) {
	obj := NewGameObject("Test")

	obj.Start()
	if !obj.started {
		t.Error("started flag should be true after Start()")
	}

	obj.Start() // Should not panic or re-initialize
}
