package timeutil

import (
	"testing"
	"time"
)

func TestRealClock(t *testing.T) {
	clock := RealClock{}

	before := time.Now()
	if now := clock.Now(); now.Before(before) {
		t.Errorf("Now() = %v, earlier than %v", now, before)
	}

	fired := make(chan struct{})
	clock.AfterFunc(time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("AfterFunc callback did not run")
	}

	timer := clock.AfterFunc(time.Hour, func() { t.Error("stopped timer fired") })
	if !timer.Stop() {
		t.Error("Stop() should report an active timer")
	}
}

func TestMockClock_AdvanceFiresInDeadlineOrder(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	var order []string
	clock.AfterFunc(2*time.Second, func() { order = append(order, "late") })
	clock.AfterFunc(time.Second, func() { order = append(order, "early") })

	if clock.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", clock.Pending())
	}

	clock.Advance(999 * time.Millisecond)
	if len(order) != 0 {
		t.Fatalf("timers fired early: %v", order)
	}

	clock.Advance(5 * time.Second)
	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Errorf("fire order = %v, want [early late]", order)
	}
	if clock.Pending() != 0 {
		t.Errorf("Pending() = %d after firing, want 0", clock.Pending())
	}
	if got := clock.Now(); !got.Equal(start.Add(5999 * time.Millisecond)) {
		t.Errorf("Now() = %v", got)
	}
}

func TestMockTimer_Stop(t *testing.T) {
	clock := NewMockClock(time.Time{})

	fired := false
	timer := clock.AfterFunc(time.Second, func() { fired = true })
	if !timer.Stop() {
		t.Error("first Stop() should report an active timer")
	}
	if timer.Stop() {
		t.Error("second Stop() should report an inactive timer")
	}

	clock.Advance(time.Minute)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestMockTimer_FiresOnce(t *testing.T) {
	clock := NewMockClock(time.Time{})

	count := 0
	timer := clock.AfterFunc(0, func() { count++ })
	clock.Advance(0)
	clock.Advance(time.Second)
	if count != 1 {
		t.Errorf("callback ran %d times, want 1", count)
	}
	if timer.Stop() {
		t.Error("Stop() after firing should report false")
	}
}
