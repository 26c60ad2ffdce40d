package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagServer  = flag.String("server", "", "Build server address")
	flagCatalog = flag.String("catalog", "", "Path to catalog file")
	flagGrid    = flag.Float64("grid", 0, "Grid cell size")
	flagUser    = flag.Uint("user", 0, "Local user id")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagServer != "" {
		cfg.Authority.Server = *flagServer
	}
	if *flagCatalog != "" {
		cfg.Catalog.Path = *flagCatalog
	}
	if *flagGrid > 0 {
		cfg.Placement.GridSize = float32(*flagGrid)
	}
	if *flagUser > 0 {
		cfg.World.UserID = uint32(*flagUser)
	}
}
