package buildmode

// frameTimer runs a callback once after a delay measured in frame
// time. It is advanced from its owning session's update, so the
// callback can never interleave with a frame in progress, and a
// cancelled or disposed timer never fires.
type frameTimer struct {
	remaining float32
	fire      func()
}

// start arms the timer. Restarting a pending timer replaces it.
func (t *frameTimer) start(seconds float32, fire func()) {
	t.remaining = seconds
	t.fire = fire
}

// cancel disarms the timer without firing.
func (t *frameTimer) cancel() {
	t.remaining = 0
	t.fire = nil
}

// pending reports whether the timer is armed.
func (t *frameTimer) pending() bool {
	return t.fire != nil
}

// advance counts down and fires once the delay has elapsed.
func (t *frameTimer) advance(dt float32) {
	if t.fire == nil {
		return
	}
	t.remaining -= dt
	if t.remaining <= 0 {
		fire := t.fire
		t.fire = nil
		fire()
	}
}
