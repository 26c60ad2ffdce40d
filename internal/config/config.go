// Package config handles tool configuration loading and management.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/buildmode/internal/input"
)

// Duration is a time.Duration that reads and writes "300ms" style
// strings in YAML.
type Duration time.Duration

// MarshalYAML emits the duration in time.Duration notation.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML parses time.Duration notation.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds all tool settings.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Placement PlacementConfig `yaml:"placement"`
	Input     input.Bindings  `yaml:"input"`
	Authority AuthorityConfig `yaml:"authority"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WorldConfig holds sandbox world settings.
type WorldConfig struct {
	GroundY   float32 `yaml:"ground_y"`   // ground plane height
	UserID    uint32  `yaml:"user_id"`    // owner id for local placements
	FrameRate int     `yaml:"frame_rate"` // fixed update rate
}

// PlacementConfig holds the solver and session tunables.
type PlacementConfig struct {
	GridSize         float32 `yaml:"grid_size"`
	GroundNormalMin  float32 `yaml:"ground_normal_min"`
	CeilingNormalMax float32 `yaml:"ceiling_normal_max"`
	WallNormalMax    float32 `yaml:"wall_normal_max"`

	MoveSpeed     float32 `yaml:"move_speed"`      // preview smoothing rate, 1/s
	RotateStepDeg float32 `yaml:"rotate_step_deg"` // yaw per rotate command
	MaxRange      float32 `yaml:"max_range"`       // cursor raycast reach

	PlaceCooldown  Duration `yaml:"place_cooldown"`
	DeleteCooldown Duration `yaml:"delete_cooldown"`
}

// AuthorityConfig holds build server connection settings. An empty
// server address keeps placements local.
type AuthorityConfig struct {
	Server string `yaml:"server"`
}

// CatalogConfig holds the object catalog source. An empty path uses
// the built-in set.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			GroundY:   0,
			UserID:    1,
			FrameRate: 60,
		},
		Placement: PlacementConfig{
			GridSize:         1,
			GroundNormalMin:  0.9,
			CeilingNormalMax: -0.9,
			WallNormalMax:    0.5,
			MoveSpeed:        10,
			RotateStepDeg:    90,
			MaxRange:         50,
			PlaceCooldown:    Duration(300 * time.Millisecond),
			DeleteCooldown:   Duration(300 * time.Millisecond),
		},
		Input: input.DefaultBindings(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
