package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test placement defaults
	if cfg.Placement.GridSize != 1 {
		t.Errorf("expected grid size 1, got %v", cfg.Placement.GridSize)
	}
	if cfg.Placement.GroundNormalMin != 0.9 {
		t.Errorf("expected ground_normal_min 0.9, got %v", cfg.Placement.GroundNormalMin)
	}
	if cfg.Placement.CeilingNormalMax != -0.9 {
		t.Errorf("expected ceiling_normal_max -0.9, got %v", cfg.Placement.CeilingNormalMax)
	}
	if cfg.Placement.WallNormalMax != 0.5 {
		t.Errorf("expected wall_normal_max 0.5, got %v", cfg.Placement.WallNormalMax)
	}
	if cfg.Placement.MoveSpeed != 10 {
		t.Errorf("expected move speed 10, got %v", cfg.Placement.MoveSpeed)
	}
	if cfg.Placement.RotateStepDeg != 90 {
		t.Errorf("expected rotate step 90, got %v", cfg.Placement.RotateStepDeg)
	}
	if time.Duration(cfg.Placement.PlaceCooldown) != 300*time.Millisecond {
		t.Errorf("expected place cooldown 300ms, got %v", time.Duration(cfg.Placement.PlaceCooldown))
	}

	// Test world defaults
	if cfg.World.FrameRate != 60 {
		t.Errorf("expected frame rate 60, got %d", cfg.World.FrameRate)
	}
	if cfg.World.UserID != 1 {
		t.Errorf("expected user id 1, got %d", cfg.World.UserID)
	}

	// Test input defaults
	if cfg.Input.ToggleBuild != 'b' {
		t.Errorf("expected toggle_build 'b', got %q", rune(cfg.Input.ToggleBuild))
	}

	// Test authority defaults
	if cfg.Authority.Server != "" {
		t.Errorf("expected no build server by default, got %s", cfg.Authority.Server)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
world:
  ground_y: 2
  user_id: 7
  frame_rate: 30

placement:
  grid_size: 0.5
  wall_normal_max: 0.2
  move_speed: 6
  rotate_step_deg: 45
  place_cooldown: 250ms
  delete_cooldown: 1s

input:
  toggle_build: t
  confirm: p

authority:
  server: "build.server.com:7200"

catalog:
  path: "objects.yaml"

logging:
  level: "debug"
  log_file: "buildmode.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.World.GroundY != 2 {
		t.Errorf("expected ground_y 2, got %v", cfg.World.GroundY)
	}
	if cfg.World.UserID != 7 {
		t.Errorf("expected user id 7, got %d", cfg.World.UserID)
	}
	if cfg.World.FrameRate != 30 {
		t.Errorf("expected frame rate 30, got %d", cfg.World.FrameRate)
	}

	if cfg.Placement.GridSize != 0.5 {
		t.Errorf("expected grid size 0.5, got %v", cfg.Placement.GridSize)
	}
	if cfg.Placement.WallNormalMax != 0.2 {
		t.Errorf("expected wall_normal_max 0.2, got %v", cfg.Placement.WallNormalMax)
	}
	if cfg.Placement.MoveSpeed != 6 {
		t.Errorf("expected move speed 6, got %v", cfg.Placement.MoveSpeed)
	}
	if time.Duration(cfg.Placement.PlaceCooldown) != 250*time.Millisecond {
		t.Errorf("expected place cooldown 250ms, got %v", time.Duration(cfg.Placement.PlaceCooldown))
	}
	if time.Duration(cfg.Placement.DeleteCooldown) != time.Second {
		t.Errorf("expected delete cooldown 1s, got %v", time.Duration(cfg.Placement.DeleteCooldown))
	}

	// Unmentioned placement values keep their defaults
	if cfg.Placement.GroundNormalMin != 0.9 {
		t.Errorf("expected ground_normal_min 0.9, got %v", cfg.Placement.GroundNormalMin)
	}

	if cfg.Input.ToggleBuild != 't' {
		t.Errorf("expected toggle_build 't', got %q", rune(cfg.Input.ToggleBuild))
	}
	if cfg.Input.Confirm != 'p' {
		t.Errorf("expected confirm 'p', got %q", rune(cfg.Input.Confirm))
	}
	if cfg.Input.Rotate != 'r' {
		t.Errorf("expected rotate to keep default 'r', got %q", rune(cfg.Input.Rotate))
	}

	if cfg.Authority.Server != "build.server.com:7200" {
		t.Errorf("expected server build.server.com:7200, got %s", cfg.Authority.Server)
	}
	if cfg.Catalog.Path != "objects.yaml" {
		t.Errorf("expected catalog path objects.yaml, got %s", cfg.Catalog.Path)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "buildmode.log" {
		t.Errorf("expected log file 'buildmode.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
placement:
  grid_size: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileBadDuration(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.yaml")

	if err := os.WriteFile(configPath, []byte("placement:\n  place_cooldown: soon\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error for unparseable duration, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("world:\n  ground_y: 1\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "server flag",
			setup: func() {
				*flagServer = "custom.server.com:7200"
			},
			verify: func(cfg *Config) {
				if cfg.Authority.Server != "custom.server.com:7200" {
					t.Errorf("expected server custom.server.com:7200, got %s", cfg.Authority.Server)
				}
			},
			teardown: func() {
				*flagServer = ""
			},
		},
		{
			name: "catalog flag",
			setup: func() {
				*flagCatalog = "custom.yaml"
			},
			verify: func(cfg *Config) {
				if cfg.Catalog.Path != "custom.yaml" {
					t.Errorf("expected catalog path custom.yaml, got %s", cfg.Catalog.Path)
				}
			},
			teardown: func() {
				*flagCatalog = ""
			},
		},
		{
			name: "grid flag",
			setup: func() {
				*flagGrid = 2
			},
			verify: func(cfg *Config) {
				if cfg.Placement.GridSize != 2 {
					t.Errorf("expected grid size 2, got %v", cfg.Placement.GridSize)
				}
			},
			teardown: func() {
				*flagGrid = 0
			},
		},
		{
			name: "user flag",
			setup: func() {
				*flagUser = 9
			},
			verify: func(cfg *Config) {
				if cfg.World.UserID != 9 {
					t.Errorf("expected user id 9, got %d", cfg.World.UserID)
				}
			},
			teardown: func() {
				*flagUser = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
placement:
  grid_size: 2
  move_speed: 5
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagGrid = 4
	defer func() {
		*flagConfig = ""
		*flagGrid = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Grid size should be from flag (4), not file (2)
	if cfg.Placement.GridSize != 4 {
		t.Errorf("expected grid size 4 from flag, got %v", cfg.Placement.GridSize)
	}

	// Move speed should be from file (5) since no flag override
	if cfg.Placement.MoveSpeed != 5 {
		t.Errorf("expected move speed 5 from file, got %v", cfg.Placement.MoveSpeed)
	}
}

func TestLoadRejectsDuplicateBindings(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
input:
  rotate: b
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error for rotate and toggle_build sharing a key")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "saved", "config.yaml")

	cfg := Default()
	cfg.Placement.GridSize = 0.25
	cfg.Authority.Server = "build.server.com:7200"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if loaded.Placement.GridSize != 0.25 {
		t.Errorf("expected grid size 0.25 after round trip, got %v", loaded.Placement.GridSize)
	}
	if loaded.Authority.Server != "build.server.com:7200" {
		t.Errorf("expected saved server address, got %s", loaded.Authority.Server)
	}
	if time.Duration(loaded.Placement.PlaceCooldown) != 300*time.Millisecond {
		t.Errorf("expected place cooldown to survive the round trip, got %v", time.Duration(loaded.Placement.PlaceCooldown))
	}
}
