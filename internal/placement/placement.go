// Package placement computes grid-snapped poses and surface validity
// for objects placed into the world. All functions are pure: identical
// inputs produce identical poses.
package placement

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/buildmode/pkg/vmath"
)

// SurfaceCategory classifies what kind of surface an object mounts to.
type SurfaceCategory int

const (
	SurfaceGround SurfaceCategory = iota
	SurfaceCeiling
	SurfaceWall
)

// String returns a human-readable category name.
func (c SurfaceCategory) String() string {
	switch c {
	case SurfaceGround:
		return "ground"
	case SurfaceCeiling:
		return "ceiling"
	case SurfaceWall:
		return "wall"
	default:
		return "unknown"
	}
}

// Extents is the bounding size of a placeable object. Height drives the
// ground/ceiling offset, depth drives the wall offset.
type Extents struct {
	Width  float32
	Height float32
	Depth  float32
}

// Pose is a placement position plus a yaw about the vertical axis.
// Placed objects never pitch or roll.
type Pose struct {
	Position vmath.Vec3
	Yaw      float32
}

// Config holds the placement tunables. Normal thresholds classify which
// surfaces each category accepts.
type Config struct {
	GridSize         float32
	GroundNormalMin  float32
	CeilingNormalMax float32
	WallNormalMax    float32
}

// DefaultConfig returns the stock placement tunables.
func DefaultConfig() Config {
	return Config{
		GridSize:         1.0,
		GroundNormalMin:  0.9,
		CeilingNormalMax: -0.9,
		WallNormalMax:    0.5,
	}
}

// Snap rounds v to the nearest multiple of grid. A non-positive grid
// disables snapping.
func Snap(v, grid float32) float32 {
	if grid <= 0 {
		return v
	}
	return math32.Floor(v/grid+0.5) * grid
}

// SurfaceAllowed reports whether a surface with the given normal can
// host an object of the given category. Ground wants a near-vertical
// upward normal, ceiling a downward one, wall a near-horizontal one.
func (c Config) SurfaceAllowed(cat SurfaceCategory, normal vmath.Vec3) bool {
	switch cat {
	case SurfaceGround:
		return normal.Y > c.GroundNormalMin
	case SurfaceCeiling:
		return normal.Y < c.CeilingNormalMax
	case SurfaceWall:
		return math32.Abs(normal.Y) < c.WallNormalMax
	default:
		return false
	}
}

// GroundPose places an object on top of a horizontal surface. The
// horizontal coordinates snap to the grid and the pivot is lifted by
// half the object height so it rests on the surface instead of sinking
// into it.
func (c Config) GroundPose(hit vmath.Vec3, ext Extents, yaw float32) Pose {
	return Pose{
		Position: vmath.Vec3{
			X: Snap(hit.X, c.GridSize),
			Y: hit.Y + ext.Height/2,
			Z: Snap(hit.Z, c.GridSize),
		},
		Yaw: yaw,
	}
}

// CeilingPose places an object hanging below a ceiling surface. Same as
// GroundPose except the pivot drops by half the object height.
func (c Config) CeilingPose(hit vmath.Vec3, ext Extents, yaw float32) Pose {
	return Pose{
		Position: vmath.Vec3{
			X: Snap(hit.X, c.GridSize),
			Y: hit.Y - ext.Height/2,
			Z: Snap(hit.Z, c.GridSize),
		},
		Yaw: yaw,
	}
}

// WallPose places an object flush against a vertical surface. The hit
// point is pushed outward along the wall normal by half the object
// depth, only the vertical coordinate snaps to the grid, and the
// object's forward axis faces out from the wall before yaw is applied.
func (c Config) WallPose(hit, normal vmath.Vec3, ext Extents, yaw float32) Pose {
	offset := hit.Add(normal.Scale(ext.Depth / 2))
	return Pose{
		Position: vmath.Vec3{
			X: offset.X,
			Y: Snap(offset.Y, c.GridSize),
			Z: offset.Z,
		},
		Yaw: math32.Atan2(normal.X, normal.Z) + yaw,
	}
}
