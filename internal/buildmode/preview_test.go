package buildmode

import (
	"testing"

	"github.com/Faultbox/buildmode/internal/placement"
	"github.com/Faultbox/buildmode/pkg/vmath"
)

func testPreview(t *testing.T, speed float32) (*Preview, *fakeScene) {
	t.Helper()
	scene := newFakeScene()
	entry := testCatalog(t).At(1)
	p, err := NewPreview(scene, entry, speed)
	if err != nil {
		t.Fatalf("NewPreview: %v", err)
	}
	return p, scene
}

func TestPreviewFirstTargetSnaps(t *testing.T) {
	p, scene := testPreview(t, 10)
	ghost := scene.ghosts[0]

	if ghost.visible {
		t.Error("preview ghost should spawn hidden")
	}

	pose := placement.Pose{Position: vmath.Vec3{X: 3, Y: 1, Z: 8}}
	p.SetTarget(pose)

	if p.Current() != pose {
		t.Errorf("current = %+v, want %+v", p.Current(), pose)
	}
	if !ghost.visible {
		t.Error("preview ghost should be visible after the first target")
	}
	if ghost.pose != pose {
		t.Errorf("ghost pose = %+v, want %+v", ghost.pose, pose)
	}
}

func TestPreviewAdvanceFullStep(t *testing.T) {
	p, _ := testPreview(t, 10)

	p.SetTarget(placement.Pose{Position: vmath.Vec3{X: 1}})
	target := placement.Pose{Position: vmath.Vec3{X: 5, Y: 2, Z: -3}, Yaw: 1.2}
	p.SetTarget(target)

	// dt*speed >= 1 lands exactly on the target.
	p.Advance(0.2)
	if p.Current() != target {
		t.Errorf("current = %+v, want exact target %+v", p.Current(), target)
	}
}

func TestPreviewAdvanceZeroDt(t *testing.T) {
	p, _ := testPreview(t, 10)

	start := placement.Pose{Position: vmath.Vec3{X: 1, Y: 1, Z: 1}}
	p.SetTarget(start)
	p.SetTarget(placement.Pose{Position: vmath.Vec3{X: 9, Y: 9, Z: 9}})

	p.Advance(0)
	if p.Current() != start {
		t.Errorf("current = %+v, want unchanged %+v", p.Current(), start)
	}
}

func TestPreviewAdvancePartialStep(t *testing.T) {
	p, _ := testPreview(t, 10)

	p.SetTarget(placement.Pose{Position: vmath.Vec3{}})
	p.SetTarget(placement.Pose{Position: vmath.Vec3{X: 2, Y: 4, Z: 6}, Yaw: 1})

	// dt*speed = 0.5 moves halfway.
	p.Advance(0.05)
	want := vmath.Vec3{X: 1, Y: 2, Z: 3}
	if p.Current().Position.Distance(want) > 0.0001 {
		t.Errorf("current = %v, want %v", p.Current().Position, want)
	}
	if p.Current().Yaw < 0.4999 || p.Current().Yaw > 0.5001 {
		t.Errorf("yaw = %v, want 0.5", p.Current().Yaw)
	}

	// Repeated saturated steps converge onto the target.
	p.Advance(0.2)
	if p.Current() != p.Target() {
		t.Errorf("current = %+v, want %+v", p.Current(), p.Target())
	}
}

func TestPreviewFeedbackForwarded(t *testing.T) {
	p, scene := testPreview(t, 10)
	ghost := scene.ghosts[0]

	p.SetFeedback(true)
	if !p.Valid() || !ghost.valid {
		t.Error("valid feedback did not reach the ghost")
	}
	p.SetFeedback(false)
	if p.Valid() || ghost.valid {
		t.Error("invalid feedback did not reach the ghost")
	}
}

func TestPreviewDestroy(t *testing.T) {
	p, scene := testPreview(t, 10)

	p.Destroy()
	if scene.live != 0 || !scene.ghosts[0].destroyed {
		t.Error("destroy did not release the ghost")
	}

	defer func() {
		if recover() == nil {
			t.Error("second Destroy should panic")
		}
	}()
	p.Destroy()
}
