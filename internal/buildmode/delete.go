package buildmode

import (
	"go.uber.org/zap"

	"github.com/Faultbox/buildmode/internal/input"
	"github.com/Faultbox/buildmode/internal/logger"
)

// DeleteSession drives removal mode. Each frame it resolves the object
// under the cursor, highlights it when it is deletable and owned by the
// current user, and emits one deletion request per confirm press.
//
// The ownership gate is a hard invariant: an object outside the user's
// build collection can never become the target, so it can never reach
// the request step.
type DeleteSession struct {
	env *env

	target Ref // NoRef while nothing is targeted

	confirmHeld bool
	debounce    bool
	cooldown    frameTimer
}

func newDeleteSession(env *env) *DeleteSession {
	logger.Info("delete mode started")
	return &DeleteSession{env: env}
}

func (s *DeleteSession) advance(dt float32) {
	s.cooldown.advance(dt)

	s.retarget(s.resolveTarget())

	if s.target != NoRef && s.confirmHeld && !s.debounce {
		s.requestDelete()
	}
}

// resolveTarget raycasts and filters the hit down to a legal removal
// candidate.
func (s *DeleteSession) resolveTarget() Ref {
	ray, ok := s.env.cursor.CursorRay()
	if !ok {
		return NoRef
	}
	hit, ok := s.env.scene.Raycast(ray)
	if !ok || hit.Object == NoRef {
		return NoRef
	}
	if !s.env.scene.Deletable(hit.Object) || !s.env.owner.Owns(hit.Object) {
		return NoRef
	}
	return hit.Object
}

// retarget moves the highlight to a new candidate. Switching straight
// from one object to another turns the old highlight off and the new
// one on within the same frame.
func (s *DeleteSession) retarget(ref Ref) {
	if ref == s.target {
		return
	}
	if s.target != NoRef {
		s.env.scene.SetHighlight(s.target, false)
	}
	s.target = ref
	if ref != NoRef {
		s.env.scene.SetHighlight(ref, true)
	}
}

func (s *DeleteSession) requestDelete() {
	s.debounce = true
	s.env.auth.RequestDelete(s.target)
	s.cooldown.start(float32(s.env.tuning.DeleteCooldown.Seconds()), func() {
		s.debounce = false
	})
	logger.Debug("deletion requested", zap.Uint32("ref", uint32(s.target)))
}

func (s *DeleteSession) handleEvent(ev input.Event) error {
	switch ev.Type {
	case input.EventConfirmDown:
		s.confirmHeld = true
	case input.EventConfirmUp:
		s.confirmHeld = false
		s.clearDebounce()
	}
	return nil
}

func (s *DeleteSession) clearDebounce() {
	s.debounce = false
	s.cooldown.cancel()
}

func (s *DeleteSession) dispose() {
	s.cooldown.cancel()
	s.retarget(NoRef)
	logger.Info("delete mode ended")
}

// Target returns the currently highlighted object, or NoRef.
func (s *DeleteSession) Target() Ref {
	return s.target
}
