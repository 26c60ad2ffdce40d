// Package buildmode implements the interactive placement tool: a build
// session that previews and commits object placements, a delete session
// that targets owned objects for removal, and the controller that keeps
// exactly one session active at a time.
package buildmode

import (
	"github.com/Faultbox/buildmode/internal/catalog"
	"github.com/Faultbox/buildmode/internal/placement"
	"github.com/Faultbox/buildmode/pkg/vmath"
)

// Ref identifies an object living in the scene.
type Ref uint32

// NoRef marks the absence of a scene object.
const NoRef Ref = 0

// SurfaceHit is the result of a single cursor raycast: the hit point,
// the unit surface normal there, and the object that was struck.
// Recomputed every frame, never persisted.
type SurfaceHit struct {
	Point  vmath.Vec3
	Normal vmath.Vec3
	Object Ref
}

// Scene is the live world the tool operates on. Raycasts and overlap
// queries are synchronous and bounded; they never wait on the network.
type Scene interface {
	// Raycast casts a ray into the scene, skipping the excluded
	// objects, and reports the nearest surface struck.
	Raycast(ray vmath.Ray, exclude ...Ref) (SurfaceHit, bool)

	// QueryOverlap reports the solid objects intersecting the box,
	// skipping the excluded objects.
	QueryOverlap(box vmath.AABB, exclude ...Ref) []Ref

	// SpawnGhost instantiates a non-committed stand-in for a catalog
	// entry. Ghosts never obstruct raycasts or overlap queries.
	SpawnGhost(entry catalog.Entry) (Ghost, error)

	// SpawnMarker instantiates the flat grid indicator ghost.
	SpawnMarker() (Ghost, error)

	// SetHighlight switches the removal highlight on an object on or
	// off. Highlighting an unknown object is a no-op.
	SetHighlight(ref Ref, on bool)

	// Deletable reports whether the object may be removed at all.
	Deletable(ref Ref) bool
}

// Ghost is a handle to a spawned stand-in object. A ghost stays in the
// scene until Destroy is called, which must happen exactly once.
type Ghost interface {
	Ref() Ref
	SetPose(pose placement.Pose)
	SetFeedback(valid bool)
	SetVisible(visible bool)
	Destroy()
}

// Authority accepts placement and deletion requests. Requests are
// one-way: the tool never waits for or reacts to the outcome here.
type Authority interface {
	RequestPlace(catalogID string, pose placement.Pose)
	RequestDelete(ref Ref)
}

// Ownership answers whether an object belongs to the current user's
// build collection.
type Ownership interface {
	Owns(ref Ref) bool
}

// CursorSource produces the cursor ray for the current frame. ok is
// false when the cursor is not over the scene.
type CursorSource interface {
	CursorRay() (ray vmath.Ray, ok bool)
}
