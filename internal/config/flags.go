package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagCellSize   = flag.Float64("cell-size", 0, "World size of one grid cell")
	flagWallHeight = flag.Float64("wall-height", 0, "Height of the extruded walls")
	flagOut        = flag.String("out", "", "Output directory")
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
	if *flagCellSize > 0 {
		cfg.Mesh.CellSize = float32(*flagCellSize)
	}
	if *flagWallHeight > 0 {
		cfg.Mesh.WallHeight = float32(*flagWallHeight)
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
}
