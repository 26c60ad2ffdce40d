package buildmode

import (
	"github.com/Faultbox/buildmode/internal/catalog"
	"github.com/Faultbox/buildmode/internal/placement"
	"github.com/Faultbox/buildmode/pkg/vmath"
)

// Preview is the in-scene stand-in for the object about to be placed.
// It owns one ghost and eases its pose toward a target every frame, so
// the stand-in trails the cursor smoothly instead of teleporting.
type Preview struct {
	ghost   Ghost
	speed   float32
	current placement.Pose
	target  placement.Pose
	hasPose bool
	valid   bool
}

// NewPreview spawns a ghost for the entry. The ghost stays hidden
// until the first target pose arrives.
func NewPreview(scene Scene, entry catalog.Entry, speed float32) (*Preview, error) {
	ghost, err := scene.SpawnGhost(entry)
	if err != nil {
		return nil, err
	}
	ghost.SetVisible(false)
	ghost.SetFeedback(false)
	return &Preview{ghost: ghost, speed: speed}, nil
}

// Ref returns the preview's scene object, for raycast exclusion.
func (p *Preview) Ref() Ref {
	return p.ghost.Ref()
}

// SetTarget records the desired pose without moving the preview. The
// very first target snaps the preview straight onto it so the ghost
// does not glide in from the world origin.
func (p *Preview) SetTarget(pose placement.Pose) {
	p.target = pose
	if !p.hasPose {
		p.current = pose
		p.hasPose = true
		p.ghost.SetPose(p.current)
		p.ghost.SetVisible(true)
	}
}

// Target returns the pose the preview is easing toward.
func (p *Preview) Target() placement.Pose {
	return p.target
}

// Current returns the pose the ghost is rendered at this frame.
func (p *Preview) Current() placement.Pose {
	return p.current
}

// Advance eases the current pose toward the target. The step size is
// frame rate independent: dt*speed >= 1 lands exactly on the target,
// dt = 0 leaves the pose untouched.
func (p *Preview) Advance(dt float32) {
	if !p.hasPose {
		return
	}
	t := vmath.Clamp(dt*p.speed, 0, 1)
	if t >= 1 {
		p.current = p.target
	} else {
		p.current.Position = p.current.Position.Lerp(p.target.Position, t)
		p.current.Yaw = vmath.LerpAngle(p.current.Yaw, p.target.Yaw, t)
	}
	p.ghost.SetPose(p.current)
}

// SetFeedback pushes the valid/invalid visual state to the ghost.
func (p *Preview) SetFeedback(valid bool) {
	p.valid = valid
	p.ghost.SetFeedback(valid)
}

// Valid returns the last feedback state pushed.
func (p *Preview) Valid() bool {
	return p.valid
}

// Destroy releases the ghost from the scene. Must be called exactly
// once.
func (p *Preview) Destroy() {
	if p.ghost == nil {
		panic("buildmode: preview destroyed twice")
	}
	p.ghost.Destroy()
	p.ghost = nil
}
