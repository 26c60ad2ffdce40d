package catalog

import (
	"github.com/Faultbox/buildmode/internal/placement"
	"github.com/Faultbox/buildmode/pkg/vmath"
)

// Builtin returns the default catalog used when no catalog file is
// configured. Every entry carries a solid body part and a footprint
// anchor part sized to the full extents.
func Builtin() *Catalog {
	return &Catalog{entries: []Entry{
		builtinEntry("crate", "Wooden Crate", placement.SurfaceGround, placement.Extents{Width: 1, Height: 1, Depth: 1}),
		builtinEntry("barrel", "Barrel", placement.SurfaceGround, placement.Extents{Width: 1, Height: 1.4, Depth: 1}),
		builtinEntry("bench", "Bench", placement.SurfaceGround, placement.Extents{Width: 2, Height: 1, Depth: 1}),
		builtinEntry("lantern", "Hanging Lantern", placement.SurfaceCeiling, placement.Extents{Width: 0.5, Height: 1, Depth: 0.5}),
		builtinEntry("shelf", "Wall Shelf", placement.SurfaceWall, placement.Extents{Width: 1, Height: 0.5, Depth: 0.4}),
		builtinEntry("banner", "Banner", placement.SurfaceWall, placement.Extents{Width: 0.6, Height: 1.2, Depth: 0.1}),
	}}
}

func builtinEntry(id, name string, cat placement.SurfaceCategory, ext placement.Extents) Entry {
	size := vmath.Vec3{X: ext.Width, Y: ext.Height, Z: ext.Depth}
	return Entry{
		ID:       id,
		Name:     name,
		Category: cat,
		Extents:  ext,
		Parts: []Part{
			{Name: "body", Size: size, Solid: true},
			{Name: "anchor", Size: size, Anchor: true},
		},
	}
}
