package buildmode

import (
	"math/rand/v2"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/buildmode/internal/catalog"
	"github.com/Faultbox/buildmode/internal/input"
	"github.com/Faultbox/buildmode/internal/logger"
	"github.com/Faultbox/buildmode/internal/placement"
)

// Mode is the controller's top-level state.
type Mode int

const (
	ModeNone Mode = iota
	ModeBuild
	ModeDelete
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeBuild:
		return "build"
	case ModeDelete:
		return "delete"
	default:
		return "none"
	}
}

// Tuning holds the session behavior tunables.
type Tuning struct {
	Placement placement.Config

	// MoveSpeed is the exponential smoothing rate for the preview pose
	// and grid height, in 1/s. dt*MoveSpeed >= 1 snaps in one frame.
	MoveSpeed float32

	// RotateStep is the yaw added per rotate command, in radians.
	RotateStep float32

	// Cooldowns bound how often a held confirm can repeat a request.
	PlaceCooldown  time.Duration
	DeleteCooldown time.Duration
}

// DefaultTuning returns the stock session tunables.
func DefaultTuning() Tuning {
	return Tuning{
		Placement:      placement.DefaultConfig(),
		MoveSpeed:      10,
		RotateStep:     math32.Pi / 2,
		PlaceCooldown:  300 * time.Millisecond,
		DeleteCooldown: 300 * time.Millisecond,
	}
}

// env bundles the collaborators and tunables shared by both sessions.
type env struct {
	scene   Scene
	auth    Authority
	owner   Ownership
	cursor  CursorSource
	catalog *catalog.Catalog
	tuning  Tuning
	pick    func(n int) int // selection reroll, [0, n)
}

// session is the per-mode state machine contract. Exactly one session
// is live at a time; dispose releases its scene resources.
type session interface {
	advance(dt float32)
	handleEvent(ev input.Event) error
	dispose()
}

// Controller is the top-level mode state machine. It owns the catalog
// snapshot and the single active session, constructs sessions on mode
// entry, and disposes the outgoing session before the incoming one
// exists.
type Controller struct {
	env    env
	mode   Mode
	active session
}

// NewController wires the collaborators together. The catalog is read
// once here and must not change afterwards.
func NewController(scene Scene, auth Authority, owner Ownership, cursor CursorSource, cat *catalog.Catalog, tuning Tuning) *Controller {
	return &Controller{
		env: env{
			scene:   scene,
			auth:    auth,
			owner:   owner,
			cursor:  cursor,
			catalog: cat,
			tuning:  tuning,
			pick:    rand.IntN,
		},
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Build returns the active build session, or nil outside build mode.
func (c *Controller) Build() *BuildSession {
	if s, ok := c.active.(*BuildSession); ok {
		return s
	}
	return nil
}

// Delete returns the active delete session, or nil outside delete mode.
func (c *Controller) Delete() *DeleteSession {
	if s, ok := c.active.(*DeleteSession); ok {
		return s
	}
	return nil
}

// Update advances the active session by one frame.
func (c *Controller) Update(dt float32) {
	if c.active != nil {
		c.active.advance(dt)
	}
}

// HandleEvent processes one input event: mode toggles switch sessions,
// everything else is forwarded to the active session.
func (c *Controller) HandleEvent(ev input.Event) error {
	switch ev.Type {
	case input.EventToggleBuild:
		// Toggling build from either active mode drops to idle.
		if c.mode == ModeNone {
			return c.setMode(ModeBuild)
		}
		return c.setMode(ModeNone)
	case input.EventToggleDelete:
		switch c.mode {
		case ModeBuild:
			return c.setMode(ModeDelete)
		case ModeDelete:
			return c.setMode(ModeBuild)
		default:
			// Delete mode is only reachable from build mode.
			return nil
		}
	default:
		if c.active == nil {
			return nil
		}
		if err := c.active.handleEvent(ev); err != nil {
			// A session that failed to service a command cannot keep
			// running; drop back to idle.
			_ = c.setMode(ModeNone)
			return err
		}
		return nil
	}
}

// setMode performs a mode transition. The outgoing session releases
// all of its scene resources before the incoming session is built; if
// construction fails the controller stays idle.
func (c *Controller) setMode(next Mode) error {
	if next == c.mode {
		return nil
	}

	if c.active != nil {
		c.active.dispose()
		c.active = nil
	}
	c.mode = ModeNone

	switch next {
	case ModeBuild:
		s, err := newBuildSession(&c.env)
		if err != nil {
			logger.Error("cannot enter build mode", zap.Error(err))
			return err
		}
		c.active = s
	case ModeDelete:
		c.active = newDeleteSession(&c.env)
	}
	c.mode = next
	return nil
}
