// Package config handles cavemesh configuration loading and management.
package config

// Config holds all generator settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig holds the geometry parameters passed to the generator.
type MeshConfig struct {
	CellSize   float32 `yaml:"cell_size"`
	WallHeight float32 `yaml:"wall_height"`
	Normals    bool    `yaml:"normals"` // Recalculate top surface normals
}

// OutputConfig holds where and how results are written.
type OutputConfig struct {
	Dir           string  `yaml:"dir"`
	PreviewFormat string  `yaml:"preview_format"` // png or svg
	PreviewSize   float64 `yaml:"preview_size"`   // Inches per side
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			CellSize:   1,
			WallHeight: 5,
			Normals:    true,
		},
		Output: OutputConfig{
			Dir:           ".",
			PreviewFormat: "png",
			PreviewSize:   8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
