package buildmode

import "testing"

func TestFrameTimerFiresOnceAfterDelay(t *testing.T) {
	var timer frameTimer
	fired := 0
	timer.start(0.3, func() { fired++ })

	timer.advance(0.1)
	timer.advance(0.1)
	if fired != 0 {
		t.Fatalf("fired %d times before the delay elapsed", fired)
	}
	if !timer.pending() {
		t.Fatal("timer not pending mid countdown")
	}

	timer.advance(0.15)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	if timer.pending() {
		t.Error("timer still pending after firing")
	}

	timer.advance(1)
	if fired != 1 {
		t.Errorf("fired = %d after extra advances, want 1", fired)
	}
}

func TestFrameTimerCancel(t *testing.T) {
	var timer frameTimer
	fired := false
	timer.start(0.1, func() { fired = true })
	timer.cancel()

	timer.advance(1)
	if fired {
		t.Error("cancelled timer fired")
	}
	if timer.pending() {
		t.Error("cancelled timer still pending")
	}
}

func TestFrameTimerRestartReplaces(t *testing.T) {
	var timer frameTimer
	var order []string
	timer.start(0.1, func() { order = append(order, "first") })
	timer.start(0.3, func() { order = append(order, "second") })

	// The first delay would have elapsed here, but restart replaced it.
	timer.advance(0.2)
	if len(order) != 0 {
		t.Fatalf("fired %v before the replaced delay elapsed", order)
	}

	timer.advance(0.2)
	if len(order) != 1 || order[0] != "second" {
		t.Errorf("fired = %v, want [second]", order)
	}
}

func TestFrameTimerIdleAdvance(t *testing.T) {
	var timer frameTimer
	timer.advance(1)
	if timer.pending() {
		t.Error("idle timer became pending")
	}
}

func TestFrameTimerRestartFromCallback(t *testing.T) {
	var timer frameTimer
	fired := 0
	timer.start(0.1, func() {
		fired++
		timer.start(0.1, func() { fired++ })
	})

	timer.advance(0.1)
	if fired != 1 {
		t.Fatalf("fired = %d, want 1", fired)
	}
	if !timer.pending() {
		t.Fatal("timer rearmed from callback not pending")
	}
	timer.advance(0.1)
	if fired != 2 {
		t.Errorf("fired = %d, want 2", fired)
	}
}
