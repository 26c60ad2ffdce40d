package vmath

import "github.com/chewxy/math32"

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3 // Normalized direction
}

// At returns the point a distance t along the ray.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates an AABB from two corners, swapping per axis so that
// Min <= Max holds.
func NewAABB(a, b Vec3) AABB {
	box := AABB{Min: a, Max: b}
	if box.Min.X > box.Max.X {
		box.Min.X, box.Max.X = box.Max.X, box.Min.X
	}
	if box.Min.Y > box.Max.Y {
		box.Min.Y, box.Max.Y = box.Max.Y, box.Min.Y
	}
	if box.Min.Z > box.Max.Z {
		box.Min.Z, box.Max.Z = box.Max.Z, box.Min.Z
	}
	return box
}

// FromCenterSize creates an AABB centered at center with the given
// full extents along each axis.
func FromCenterSize(center, size Vec3) AABB {
	half := size.Scale(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// BoundsRotatedY returns the axis-aligned box enclosing a box of the
// given size, centered at center, after rotation about the Y axis.
func BoundsRotatedY(center, size Vec3, yaw float32) AABB {
	sin := math32.Abs(math32.Sin(yaw))
	cos := math32.Abs(math32.Cos(yaw))
	return FromCenterSize(center, Vec3{
		X: size.X*cos + size.Z*sin,
		Y: size.Y,
		Z: size.X*sin + size.Z*cos,
	})
}

// Translate returns the box shifted by offset.
func (b AABB) Translate(offset Vec3) AABB {
	return AABB{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Center returns the box center.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extents along each axis.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether the point lies inside the box, faces included.
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Overlaps reports whether the boxes intersect. Touching faces do not
// count, so objects in adjacent grid cells are not flagged.
func (b AABB) Overlaps(other AABB) bool {
	return b.Min.X < other.Max.X && b.Max.X > other.Min.X &&
		b.Min.Y < other.Max.Y && b.Max.Y > other.Min.Y &&
		b.Min.Z < other.Max.Z && b.Max.Z > other.Min.Z
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{
			X: math32.Min(b.Min.X, other.Min.X),
			Y: math32.Min(b.Min.Y, other.Min.Y),
			Z: math32.Min(b.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: math32.Max(b.Max.X, other.Max.X),
			Y: math32.Max(b.Max.Y, other.Max.Y),
			Z: math32.Max(b.Max.Z, other.Max.Z),
		},
	}
}

// IntersectPlaneY intersects the ray with a horizontal plane at the given
// Y level. Returns the intersection point and whether the intersection is
// in front of the origin.
func (r Ray) IntersectPlaneY(planeY float32) (Vec3, bool) {
	// Ray: P = Origin + t * Direction
	// Plane: Y = planeY
	if math32.Abs(r.Direction.Y) < 0.001 {
		return Vec3{}, false // Ray parallel to plane
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return Vec3{}, false // Intersection behind ray origin
	}
	return r.At(t), true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box
// using the slab method. Returns the distance to intersection (t), the
// outward normal of the face crossed there, and whether intersection
// occurred. If the ray starts inside the box, returns the exit distance
// and exit face.
func (r Ray) IntersectAABB(box AABB) (t float32, normal Vec3, hit bool) {
	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	min := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	max := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)
	entryAxis := -1
	exitAxis := -1

	for i := 0; i < 3; i++ {
		if dir[i] != 0 {
			t1 := (min[i] - origin[i]) / dir[i]
			t2 := (max[i] - origin[i]) / dir[i]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
				entryAxis = i
			}
			if t2 < tmax {
				tmax = t2
				exitAxis = i
			}
		} else if origin[i] < min[i] || origin[i] > max[i] {
			return 0, Vec3{}, false
		}
	}

	// Check if intersection is valid
	if tmax < tmin || tmax < 0 {
		return 0, Vec3{}, false
	}

	// Entry faces oppose the ray, exit faces point along it.
	if tmin < 0 {
		return tmax, faceNormal(exitAxis, dir, 1), true
	}
	return tmin, faceNormal(entryAxis, dir, -1), true
}

func faceNormal(axis int, dir [3]float32, sign float32) Vec3 {
	if axis < 0 {
		return Vec3{}
	}
	s := sign
	if dir[axis] < 0 {
		s = -sign
	}
	var n Vec3
	switch axis {
	case 0:
		n.X = s
	case 1:
		n.Y = s
	case 2:
		n.Z = s
	}
	return n
}
