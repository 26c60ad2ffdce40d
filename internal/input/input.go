// Package input defines the discrete command events that drive the
// build tool, and the key bindings that produce them. Device polling
// stays with the frontend; sessions only ever see Events.
package input

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Event types understood by the session controller.
type EventType int

const (
	EventNone EventType = iota
	EventToggleBuild
	EventToggleDelete
	EventRotate
	EventCycleNext
	EventCyclePrev
	EventConfirmDown
	EventConfirmUp
)

// String returns a human-readable event name.
func (t EventType) String() string {
	switch t {
	case EventToggleBuild:
		return "toggle-build"
	case EventToggleDelete:
		return "toggle-delete"
	case EventRotate:
		return "rotate"
	case EventCycleNext:
		return "cycle-next"
	case EventCyclePrev:
		return "cycle-prev"
	case EventConfirmDown:
		return "confirm-down"
	case EventConfirmUp:
		return "confirm-up"
	default:
		return "none"
	}
}

// Event represents a processed input event.
type Event struct {
	Type EventType
}

// Key is a single-character key binding. It marshals to and from the
// literal character, so configs read `rotate: r` rather than a code
// point.
type Key rune

// MarshalYAML emits the key as its character.
func (k Key) MarshalYAML() (interface{}, error) {
	return string(rune(k)), nil
}

// UnmarshalYAML reads a one-character string.
func (k *Key) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return fmt.Errorf("key binding %q: want exactly one character", s)
	}
	*k = Key(runes[0])
	return nil
}

// Bindings maps keys to command events. The confirm key produces
// ConfirmDown on press; frontends that can observe releases emit
// ConfirmUp themselves.
type Bindings struct {
	ToggleBuild  Key `yaml:"toggle_build"`
	ToggleDelete Key `yaml:"toggle_delete"`
	Rotate       Key `yaml:"rotate"`
	CycleNext    Key `yaml:"cycle_next"`
	CyclePrev    Key `yaml:"cycle_prev"`
	Confirm      Key `yaml:"confirm"`
}

// DefaultBindings returns the stock key map.
func DefaultBindings() Bindings {
	return Bindings{
		ToggleBuild:  'b',
		ToggleDelete: 'x',
		Rotate:       'r',
		CycleNext:    ']',
		CyclePrev:    '[',
		Confirm:      ' ',
	}
}

// Lookup translates a pressed key into a command event.
func (b Bindings) Lookup(r rune) (EventType, bool) {
	switch Key(r) {
	case b.ToggleBuild:
		return EventToggleBuild, true
	case b.ToggleDelete:
		return EventToggleDelete, true
	case b.Rotate:
		return EventRotate, true
	case b.CycleNext:
		return EventCycleNext, true
	case b.CyclePrev:
		return EventCyclePrev, true
	case b.Confirm:
		return EventConfirmDown, true
	default:
		return EventNone, false
	}
}

// Validate rejects bindings where two commands share a key.
func (b Bindings) Validate() error {
	keys := []struct {
		name string
		key  Key
	}{
		{"toggle_build", b.ToggleBuild},
		{"toggle_delete", b.ToggleDelete},
		{"rotate", b.Rotate},
		{"cycle_next", b.CycleNext},
		{"cycle_prev", b.CyclePrev},
		{"confirm", b.Confirm},
	}
	seen := make(map[Key]string, len(keys))
	for _, k := range keys {
		if k.key == 0 {
			return fmt.Errorf("binding %s: no key assigned", k.name)
		}
		if prev, ok := seen[k.key]; ok {
			return fmt.Errorf("binding %s: key %q already bound to %s", k.name, rune(k.key), prev)
		}
		seen[k.key] = k.name
	}
	return nil
}
