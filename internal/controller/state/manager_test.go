package state

import (
	"sync"
	"testing"
)

func TestStateTransitions(t *testing.T) {
	sm := NewManager()

	if got := sm.GetState(1); got != StateNone {
		t.Fatalf("initial state = %s", got)
	}

	sm.SetState(1, StateRegisterName)
	if got := sm.GetState(1); got != StateRegisterName {
		t.Fatalf("state = %s", got)
	}

	// Данные переживают переход между шагами диалога
	sm.SetData(1, "course_id", "abc")
	sm.SetState(1, StateRegisterPhone)
	if v, ok := sm.GetData(1, "course_id"); !ok || v != "abc" {
		t.Fatalf("data lost on transition: %q %v", v, ok)
	}

	// Переход в StateNone сбрасывает всё
	sm.SetState(1, StateNone)
	if got := sm.GetState(1); got != StateNone {
		t.Fatalf("state after reset = %s", got)
	}
	if _, ok := sm.GetData(1, "course_id"); ok {
		t.Fatal("data must be cleared with the state")
	}
}

func TestClearState(t *testing.T) {
	sm := NewManager()
	sm.SetState(1, StateCourseName)
	sm.SetData(1, "name", "Английский B1")

	sm.ClearState(1)
	if got := sm.GetState(1); got != StateNone {
		t.Fatalf("state after clear = %s", got)
	}
	if data := sm.GetAllData(1); data != nil {
		t.Fatalf("data after clear = %v", data)
	}
}

func TestGetAllDataReturnsCopy(t *testing.T) {
	sm := NewManager()
	sm.SetData(1, "key", "value")

	data := sm.GetAllData(1)
	data["key"] = "changed"

	if v, _ := sm.GetData(1, "key"); v != "value" {
		t.Fatalf("internal data mutated through copy: %q", v)
	}
}

func TestUsersAreIndependent(t *testing.T) {
	sm := NewManager()
	sm.SetState(1, StateRegisterName)
	sm.SetState(2, StatePostContent)

	if sm.GetState(1) != StateRegisterName || sm.GetState(2) != StatePostContent {
		t.Fatal("states must be tracked per user")
	}

	sm.ClearState(1)
	if sm.GetState(2) != StatePostContent {
		t.Fatal("clearing one user must not touch another")
	}
}

func TestConcurrentAccess(t *testing.T) {
	sm := NewManager()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.SetState(id, StateBroadcastText)
			sm.SetData(id, "text", "hi")
			sm.GetState(id)
			sm.GetAllData(id)
			sm.ClearState(id)
		}(int64(i))
	}
	wg.Wait()
}
