package engine

import "testing"

func TestEventInvoke(t *testing.T) {
	var e Event
	calls := 0

	e.AddListener(func() { calls++ })
	e.AddListener(func() { calls++ })
	e.AddListener(nil) // ignored

	if e.GetListenerCount() != 2 {
		t.Errorf("Expected 2 listeners, got %d", e.GetListenerCount())
	}

	e.Invoke()
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}

	e.RemoveAllListeners()
	e.Invoke()
	if calls != 2 {
		t.Error("Listeners should not fire after RemoveAllListeners")
	}
}

func TestEventWithArg(t *testing.T) {
	var e EventWithArg[*GameObject]
	var received *GameObject

	e.AddListener(func(obj *GameObject) { received = obj })

	obj := NewGameObject("Payload")
	e.Invoke(obj)

	if received != obj {
		t.Error("Listener should receive the invoked argument")
	}
}
