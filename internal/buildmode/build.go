package buildmode

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/buildmode/internal/catalog"
	"github.com/Faultbox/buildmode/internal/input"
	"github.com/Faultbox/buildmode/internal/logger"
	"github.com/Faultbox/buildmode/internal/placement"
	"github.com/Faultbox/buildmode/pkg/vmath"
)

// BuildSession drives placement mode. It owns the preview and the grid
// indicator, tracks the catalog selection and accumulated rotation, and
// emits one placement request per confirm press.
type BuildSession struct {
	env *env

	preview *Preview
	marker  Ghost
	entry   catalog.Entry
	slot    int

	rotSteps int
	gridY    float32
	gridYSet bool

	valid       bool
	confirmHeld bool
	debounce    bool
	cooldown    frameTimer
}

// newBuildSession constructs an active session with a freshly rolled
// catalog selection. An empty catalog refuses to start.
func newBuildSession(env *env) (*BuildSession, error) {
	if env.catalog.Len() == 0 {
		return nil, catalog.ErrNoEntries
	}
	slot := env.pick(env.catalog.Len()) + 1
	s := &BuildSession{env: env, slot: slot, entry: env.catalog.At(slot)}

	marker, err := env.scene.SpawnMarker()
	if err != nil {
		return nil, fmt.Errorf("spawning grid indicator: %w", err)
	}
	marker.SetVisible(false)
	s.marker = marker

	preview, err := NewPreview(env.scene, s.entry, env.tuning.MoveSpeed)
	if err != nil {
		marker.Destroy()
		return nil, fmt.Errorf("spawning preview for %s: %w", s.entry.ID, err)
	}
	s.preview = preview

	logger.Info("build mode started",
		zap.Int("slot", slot),
		zap.String("entry", s.entry.ID))
	return s, nil
}

// advance runs one frame of the placement pipeline: raycast, surface
// check, pose computation, collision probe, interpolation, feedback,
// and the debounced confirm.
func (s *BuildSession) advance(dt float32) {
	// The cooldown counts down even on frames without a surface hit,
	// so a missed confirm release cannot wedge the debounce.
	s.cooldown.advance(dt)

	hit, ok := s.raycast()
	if !ok {
		// No surface under the cursor. Target pose and feedback hold.
		return
	}

	if !s.env.tuning.Placement.SurfaceAllowed(s.entry.Category, hit.Normal) {
		s.valid = false
	} else {
		pose := s.computePose(hit)
		s.trackGridHeight(hit, pose, dt)
		s.preview.SetTarget(pose)
		s.valid = !s.obstructed(pose)
	}

	s.preview.Advance(dt)
	s.preview.SetFeedback(s.valid)
	s.updateMarker()

	if s.valid && s.confirmHeld && !s.debounce {
		s.requestPlace()
	}
}

func (s *BuildSession) raycast() (SurfaceHit, bool) {
	ray, ok := s.env.cursor.CursorRay()
	if !ok {
		return SurfaceHit{}, false
	}
	return s.env.scene.Raycast(ray, s.preview.Ref(), s.marker.Ref())
}

func (s *BuildSession) computePose(hit SurfaceHit) placement.Pose {
	yaw := float32(s.rotSteps) * s.env.tuning.RotateStep
	cfg := s.env.tuning.Placement
	switch s.entry.Category {
	case placement.SurfaceCeiling:
		return cfg.CeilingPose(hit.Point, s.entry.Extents, yaw)
	case placement.SurfaceWall:
		return cfg.WallPose(hit.Point, hit.Normal, s.entry.Extents, yaw)
	default:
		return cfg.GroundPose(hit.Point, s.entry.Extents, yaw)
	}
}

// trackGridHeight eases the grid indicator height toward the surface
// height with the same smoothing law as the preview pose. Walls track
// the snapped mount height instead of the raw hit.
func (s *BuildSession) trackGridHeight(hit SurfaceHit, pose placement.Pose, dt float32) {
	target := hit.Point.Y
	if s.entry.Category == placement.SurfaceWall {
		target = pose.Position.Y
	}
	if !s.gridYSet {
		s.gridY = target
		s.gridYSet = true
		return
	}
	s.gridY = vmath.Lerp(s.gridY, target, vmath.Clamp(dt*s.env.tuning.MoveSpeed, 0, 1))
}

// obstructed is the final veto: the anchor volume at the candidate
// pose must be free of solid objects other than the session's own
// ghosts.
func (s *BuildSession) obstructed(pose placement.Pose) bool {
	box := anchorBox(s.entry, pose)
	return len(s.env.scene.QueryOverlap(box, s.preview.Ref(), s.marker.Ref())) > 0
}

// anchorBox returns the world-space probe volume for an entry's anchor
// part at a candidate pose: the axis-aligned box enclosing the anchor
// volume once yaw is applied.
func anchorBox(entry catalog.Entry, pose placement.Pose) vmath.AABB {
	a := entry.Anchor()
	center := pose.Position.Add(a.Offset.RotateY(pose.Yaw))
	return vmath.BoundsRotatedY(center, a.Size, pose.Yaw)
}

func (s *BuildSession) updateMarker() {
	if !s.gridYSet {
		return
	}
	target := s.preview.Target().Position
	s.marker.SetPose(placement.Pose{Position: vmath.Vec3{X: target.X, Y: s.gridY, Z: target.Z}})
	s.marker.SetFeedback(s.valid)
	s.marker.SetVisible(true)
}

// requestPlace emits the placement and arms the debounce. The cooldown
// bounds the repeat rate even if the release event never arrives.
func (s *BuildSession) requestPlace() {
	s.debounce = true
	pose := s.preview.Target()
	s.env.auth.RequestPlace(s.entry.ID, pose)
	s.cooldown.start(float32(s.env.tuning.PlaceCooldown.Seconds()), func() {
		s.debounce = false
	})
	logger.Debug("placement requested",
		zap.String("entry", s.entry.ID),
		zap.Float32("x", pose.Position.X),
		zap.Float32("y", pose.Position.Y),
		zap.Float32("z", pose.Position.Z))
}

func (s *BuildSession) handleEvent(ev input.Event) error {
	switch ev.Type {
	case input.EventRotate:
		s.rotSteps++
	case input.EventCycleNext:
		return s.reselect(s.env.catalog.Next(s.slot))
	case input.EventCyclePrev:
		return s.reselect(s.env.catalog.Prev(s.slot))
	case input.EventConfirmDown:
		s.confirmHeld = true
	case input.EventConfirmUp:
		s.confirmHeld = false
		s.clearDebounce()
	}
	return nil
}

// reselect swaps the preview for a new catalog slot. The old preview
// is discarded before the replacement spawns so only one stand-in ever
// exists.
func (s *BuildSession) reselect(slot int) error {
	if slot == s.slot {
		return nil
	}
	s.slot = slot
	s.entry = s.env.catalog.At(slot)
	s.valid = false

	s.preview.Destroy()
	s.preview = nil
	preview, err := NewPreview(s.env.scene, s.entry, s.env.tuning.MoveSpeed)
	if err != nil {
		return fmt.Errorf("recreating preview for %s: %w", s.entry.ID, err)
	}
	s.preview = preview

	logger.Debug("selection changed",
		zap.Int("slot", slot),
		zap.String("entry", s.entry.ID))
	return nil
}

// Both debounce clear paths are idempotent; release and cooldown may
// land on the same flag in either order.
func (s *BuildSession) clearDebounce() {
	s.debounce = false
	s.cooldown.cancel()
}

func (s *BuildSession) dispose() {
	s.cooldown.cancel()
	if s.preview != nil {
		s.preview.Destroy()
		s.preview = nil
	}
	s.marker.Destroy()
	s.marker = nil
	logger.Info("build mode ended")
}

// Slot returns the selected 1-based catalog slot.
func (s *BuildSession) Slot() int {
	return s.slot
}

// Entry returns the selected catalog entry.
func (s *BuildSession) Entry() catalog.Entry {
	return s.entry
}

// Valid reports whether the current candidate pose may be committed.
func (s *BuildSession) Valid() bool {
	return s.valid
}

// Pose returns the preview's rendered pose this frame.
func (s *BuildSession) Pose() placement.Pose {
	if s.preview == nil {
		return placement.Pose{}
	}
	return s.preview.Current()
}

// TargetPose returns the pose a confirm would commit.
func (s *BuildSession) TargetPose() placement.Pose {
	if s.preview == nil {
		return placement.Pose{}
	}
	return s.preview.Target()
}

// GridHeight returns the smoothed grid indicator height.
func (s *BuildSession) GridHeight() float32 {
	return s.gridY
}
