// Package catalog loads and validates the set of placeable object
// definitions. A catalog is read once at startup and treated as
// immutable afterwards.
package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/buildmode/internal/placement"
	"github.com/Faultbox/buildmode/pkg/vmath"
)

// Catalog errors.
var (
	ErrNoEntries = errors.New("catalog has no entries")
)

// Part is one sub-volume of a placeable object. Offset is relative to
// the object pivot, size is the full extent of the part's box.
type Part struct {
	Name   string
	Offset vmath.Vec3
	Size   vmath.Vec3
	Solid  bool
	Anchor bool
}

// Entry describes one placeable object type. Category and extents are
// fixed for the lifetime of the entry.
type Entry struct {
	ID       string
	Name     string
	Category placement.SurfaceCategory
	Extents  placement.Extents
	Parts    []Part
}

// Anchor returns the entry's anchor part, the sub-volume used as the
// placement origin and collision probe. Validated entries always have
// exactly one.
func (e Entry) Anchor() Part {
	for _, p := range e.Parts {
		if p.Anchor {
			return p
		}
	}
	return Part{}
}

// Catalog is an ordered, immutable collection of entries. Slots are
// 1-based to match the selection hotkeys.
type Catalog struct {
	entries []Entry
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// At returns the entry in the given 1-based slot.
func (c *Catalog) At(slot int) Entry {
	return c.entries[slot-1]
}

// Find returns the entry with the given id.
func (c *Catalog) Find(id string) (Entry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Next returns the slot after the given one, wrapping past the end.
func (c *Catalog) Next(slot int) int {
	return slot%len(c.entries) + 1
}

// Prev returns the slot before the given one, wrapping past the start.
func (c *Catalog) Prev(slot int) int {
	return (slot+len(c.entries)-2)%len(c.entries) + 1
}

// Entries returns a copy of all entries in slot order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// File schema.
type fileDoc struct {
	Entries []entryDoc `yaml:"entries"`
}

type entryDoc struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Category string     `yaml:"category"`
	Extents  extentsDoc `yaml:"extents"`
	Parts    []partDoc  `yaml:"parts"`
}

type extentsDoc struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Depth  float32 `yaml:"depth"`
}

type partDoc struct {
	Name   string  `yaml:"name"`
	Offset vec3Doc `yaml:"offset"`
	Size   vec3Doc `yaml:"size"`
	Solid  bool    `yaml:"solid"`
	Anchor bool    `yaml:"anchor"`
}

type vec3Doc struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Load reads and parses a catalog YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses catalog YAML data and validates every entry.
func Parse(data []byte) (*Catalog, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	entries := make([]Entry, 0, len(doc.Entries))
	for i, ed := range doc.Entries {
		if ed.ID == "" {
			return nil, fmt.Errorf("entry %d: missing id", i)
		}
		category, err := parseCategory(ed.Category)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", ed.ID, err)
		}
		parts := make([]Part, 0, len(ed.Parts))
		for _, pd := range ed.Parts {
			parts = append(parts, Part{
				Name:   pd.Name,
				Offset: vmath.Vec3{X: pd.Offset.X, Y: pd.Offset.Y, Z: pd.Offset.Z},
				Size:   vmath.Vec3{X: pd.Size.X, Y: pd.Size.Y, Z: pd.Size.Z},
				Solid:  pd.Solid,
				Anchor: pd.Anchor,
			})
		}
		entries = append(entries, Entry{
			ID:       ed.ID,
			Name:     ed.Name,
			Category: category,
			Extents: placement.Extents{
				Width:  ed.Extents.Width,
				Height: ed.Extents.Height,
				Depth:  ed.Extents.Depth,
			},
			Parts: parts,
		})
	}

	return New(entries)
}

// Encode serializes the catalog in the file schema, suitable for
// feeding back through Parse.
func (c *Catalog) Encode() ([]byte, error) {
	doc := fileDoc{Entries: make([]entryDoc, 0, len(c.entries))}
	for _, e := range c.entries {
		parts := make([]partDoc, 0, len(e.Parts))
		for _, p := range e.Parts {
			parts = append(parts, partDoc{
				Name:   p.Name,
				Offset: vec3Doc{X: p.Offset.X, Y: p.Offset.Y, Z: p.Offset.Z},
				Size:   vec3Doc{X: p.Size.X, Y: p.Size.Y, Z: p.Size.Z},
				Solid:  p.Solid,
				Anchor: p.Anchor,
			})
		}
		doc.Entries = append(doc.Entries, entryDoc{
			ID:       e.ID,
			Name:     e.Name,
			Category: e.Category.String(),
			Extents: extentsDoc{
				Width:  e.Extents.Width,
				Height: e.Extents.Height,
				Depth:  e.Extents.Depth,
			},
			Parts: parts,
		})
	}
	return yaml.Marshal(doc)
}

// New builds a validated catalog from entries. Every entry needs a
// unique id, positive extents and exactly one anchor part.
func New(entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("entry %d: missing id", i)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("entry %q: duplicate id", e.ID)
		}
		seen[e.ID] = true

		if e.Extents.Width <= 0 || e.Extents.Height <= 0 || e.Extents.Depth <= 0 {
			return nil, fmt.Errorf("entry %q: extents must be positive", e.ID)
		}

		switch e.Category {
		case placement.SurfaceGround, placement.SurfaceCeiling, placement.SurfaceWall:
		default:
			return nil, fmt.Errorf("entry %q: unknown surface category %d", e.ID, e.Category)
		}

		if len(e.Parts) == 0 {
			return nil, fmt.Errorf("entry %q: no parts", e.ID)
		}
		anchors := 0
		for _, p := range e.Parts {
			if p.Anchor {
				anchors++
			}
		}
		if anchors != 1 {
			return nil, fmt.Errorf("entry %q: want exactly one anchor part, have %d", e.ID, anchors)
		}
	}

	cat := &Catalog{entries: make([]Entry, len(entries))}
	copy(cat.entries, entries)
	return cat, nil
}

func parseCategory(s string) (placement.SurfaceCategory, error) {
	switch s {
	case "ground":
		return placement.SurfaceGround, nil
	case "ceiling":
		return placement.SurfaceCeiling, nil
	case "wall":
		return placement.SurfaceWall, nil
	default:
		return 0, fmt.Errorf("unknown surface category %q", s)
	}
}
