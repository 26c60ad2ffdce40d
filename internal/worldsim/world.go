// Package worldsim implements an in-memory world for the placement
// tool: a flat ground plane plus axis-aligned box objects. It backs
// the package tests and the terminal sandbox, and doubles as the local
// authority when no build server is configured. Everything runs on the
// frame goroutine; nothing here locks.
package worldsim

import (
	"sort"

	"github.com/Faultbox/buildmode/internal/buildmode"
	"github.com/Faultbox/buildmode/internal/catalog"
	"github.com/Faultbox/buildmode/internal/placement"
	"github.com/Faultbox/buildmode/pkg/vmath"
)

// Kind classifies the objects living in the world.
type Kind uint8

const (
	KindStatic Kind = iota // fixed world geometry
	KindPlaced             // committed through the authority
	KindGhost              // preview stand-in, never collides
	KindMarker             // grid indicator, never collides
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindPlaced:
		return "placed"
	case KindGhost:
		return "ghost"
	case KindMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// Object is one world occupant. Ghost kinds carry the preview state
// the renderer reads (visibility, feedback, highlight); solid kinds
// take part in raycasts and overlap queries.
type Object struct {
	Ref       buildmode.Ref
	Kind      Kind
	CatalogID string
	Name      string
	Pose      placement.Pose
	Parts     []catalog.Part
	Owner     uint32
	Visible   bool
	Valid     bool
	Highlight bool
}

func (o *Object) collides() bool {
	return o.Kind == KindStatic || o.Kind == KindPlaced
}

// Bounds returns the world-space box enclosing every part under the
// current pose. Partless objects collapse to a point at the position.
func (o *Object) Bounds() vmath.AABB {
	if len(o.Parts) == 0 {
		return vmath.AABB{Min: o.Pose.Position, Max: o.Pose.Position}
	}
	box := partBox(o.Pose, o.Parts[0])
	for _, p := range o.Parts[1:] {
		box = box.Union(partBox(o.Pose, p))
	}
	return box
}

// Options tune the world. Zero values fall back to defaults.
type Options struct {
	GroundY  float32 // ground plane height
	MaxRange float32 // raycast reach, default 50
	GridSize float32 // grid indicator plate size, default 1
	UserID   uint32  // owner recorded on local placements
}

// World holds every object and answers the scene queries. It satisfies
// the tool's Scene, Authority and Ownership contracts.
type World struct {
	catalog  *catalog.Catalog
	groundY  float32
	maxRange float32
	gridSize float32
	user     uint32

	nextRef uint32
	objects map[buildmode.Ref]*Object
}

// New creates an empty world over the given catalog.
func New(cat *catalog.Catalog, opts Options) *World {
	if opts.MaxRange <= 0 {
		opts.MaxRange = 50
	}
	if opts.GridSize <= 0 {
		opts.GridSize = 1
	}
	return &World{
		catalog:  cat,
		groundY:  opts.GroundY,
		maxRange: opts.MaxRange,
		gridSize: opts.GridSize,
		user:     opts.UserID,
		objects:  make(map[buildmode.Ref]*Object),
	}
}

func (w *World) add(o *Object) *Object {
	w.nextRef++
	o.Ref = buildmode.Ref(w.nextRef)
	w.objects[o.Ref] = o
	return o
}

// AddStatic inserts fixed world geometry occupying the box. Statics
// block placement and can be built against, but are never deletable.
func (w *World) AddStatic(name string, box vmath.AABB) buildmode.Ref {
	o := w.add(&Object{
		Kind:    KindStatic,
		Name:    name,
		Pose:    placement.Pose{Position: box.Center()},
		Parts:   []catalog.Part{{Name: "body", Size: box.Size(), Solid: true}},
		Visible: true,
	})
	return o.Ref
}

// Get returns the object with the given ref, or nil.
func (w *World) Get(ref buildmode.Ref) *Object {
	return w.objects[ref]
}

// All returns every object ordered by ref.
func (w *World) All() []*Object {
	out := make([]*Object, 0, len(w.objects))
	for _, o := range w.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ref < out[j].Ref })
	return out
}

// Count returns the number of objects of the given kind.
func (w *World) Count(kind Kind) int {
	n := 0
	for _, o := range w.objects {
		if o.Kind == kind {
			n++
		}
	}
	return n
}

// GroundY returns the ground plane height.
func (w *World) GroundY() float32 {
	return w.groundY
}

// partBox returns the world-space box of a part under the object pose.
func partBox(pose placement.Pose, part catalog.Part) vmath.AABB {
	center := pose.Position.Add(part.Offset.RotateY(pose.Yaw))
	return vmath.BoundsRotatedY(center, part.Size, pose.Yaw)
}

func excluded(ref buildmode.Ref, exclude []buildmode.Ref) bool {
	for _, ex := range exclude {
		if ex == ref {
			return true
		}
	}
	return false
}

// Raycast reports the nearest surface along the ray within range,
// checking the ground plane and every solid part. Ghost kinds never
// obstruct. Ground hits carry NoRef as the object.
func (w *World) Raycast(ray vmath.Ray, exclude ...buildmode.Ref) (buildmode.SurfaceHit, bool) {
	best := w.maxRange
	var hit buildmode.SurfaceHit
	found := false

	if point, ok := ray.IntersectPlaneY(w.groundY); ok {
		if t := point.Distance(ray.Origin); t < best {
			best = t
			hit = buildmode.SurfaceHit{Point: point, Normal: vmath.Vec3{Y: 1}}
			found = true
		}
	}

	for _, o := range w.objects {
		if !o.collides() || excluded(o.Ref, exclude) {
			continue
		}
		for _, part := range o.Parts {
			if !part.Solid {
				continue
			}
			t, normal, ok := ray.IntersectAABB(partBox(o.Pose, part))
			if ok && t < best {
				best = t
				hit = buildmode.SurfaceHit{Point: ray.At(t), Normal: normal, Object: o.Ref}
				found = true
			}
		}
	}
	return hit, found
}

// QueryOverlap returns the solid objects intersecting the box, ordered
// by ref.
func (w *World) QueryOverlap(box vmath.AABB, exclude ...buildmode.Ref) []buildmode.Ref {
	var out []buildmode.Ref
	for _, o := range w.objects {
		if !o.collides() || excluded(o.Ref, exclude) {
			continue
		}
		for _, part := range o.Parts {
			if part.Solid && box.Overlaps(partBox(o.Pose, part)) {
				out = append(out, o.Ref)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// SetHighlight switches the removal highlight on an object. Unknown
// refs are ignored.
func (w *World) SetHighlight(ref buildmode.Ref, on bool) {
	if o := w.objects[ref]; o != nil {
		o.Highlight = on
	}
}

// Deletable reports whether the object may be removed at all. Only
// placed objects qualify; statics and ghost kinds never do.
func (w *World) Deletable(ref buildmode.Ref) bool {
	o := w.objects[ref]
	return o != nil && o.Kind == KindPlaced
}

// Owns reports whether the object is in the local user's build
// collection.
func (w *World) Owns(ref buildmode.Ref) bool {
	o := w.objects[ref]
	return o != nil && o.Kind == KindPlaced && o.Owner == w.user
}
