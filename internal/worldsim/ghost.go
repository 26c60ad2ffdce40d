package worldsim

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/Faultbox/buildmode/internal/buildmode"
	"github.com/Faultbox/buildmode/internal/catalog"
	"github.com/Faultbox/buildmode/internal/placement"
	"github.com/Faultbox/buildmode/pkg/vmath"
)

// ghost adapts one world object to the tool's stand-in handle.
type ghost struct {
	world *World
	ref   buildmode.Ref
}

func (g *ghost) Ref() buildmode.Ref {
	return g.ref
}

func (g *ghost) SetPose(pose placement.Pose) {
	if o := g.world.objects[g.ref]; o != nil {
		o.Pose = pose
	}
}

func (g *ghost) SetFeedback(valid bool) {
	if o := g.world.objects[g.ref]; o != nil {
		o.Valid = valid
	}
}

func (g *ghost) SetVisible(visible bool) {
	if o := g.world.objects[g.ref]; o != nil {
		o.Visible = visible
	}
}

func (g *ghost) Destroy() {
	delete(g.world.objects, g.ref)
}

// SpawnGhost materializes a preview stand-in for the entry. Parts are
// deep copies of the catalog templates with their solidity stripped,
// so a ghost never blocks the probes that position it.
func (w *World) SpawnGhost(entry catalog.Entry) (buildmode.Ghost, error) {
	var parts []catalog.Part
	if err := copier.Copy(&parts, entry.Parts); err != nil {
		return nil, fmt.Errorf("copying parts for %s: %w", entry.ID, err)
	}
	for i := range parts {
		parts[i].Solid = false
	}
	o := w.add(&Object{
		Kind:      KindGhost,
		CatalogID: entry.ID,
		Name:      entry.Name,
		Parts:     parts,
		Owner:     w.user,
		Visible:   true,
	})
	return &ghost{world: w, ref: o.Ref}, nil
}

// SpawnMarker materializes the flat grid indicator plate.
func (w *World) SpawnMarker() (buildmode.Ghost, error) {
	o := w.add(&Object{
		Kind:    KindMarker,
		Name:    "grid",
		Parts:   []catalog.Part{{Name: "plate", Size: vmath.Vec3{X: w.gridSize, Y: 0.02, Z: w.gridSize}}},
		Visible: true,
	})
	return &ghost{world: w, ref: o.Ref}, nil
}
