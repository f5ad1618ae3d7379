// Package config handles editor configuration loading and management.
package config

// Config holds all editor settings.
type Config struct {
	Editor  EditorConfig  `yaml:"editor"`
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

// EditorConfig holds viewport and frame settings.
type EditorConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	GridVisible bool `yaml:"grid_visible"`
	FPSLimit    int  `yaml:"fps_limit"`
}

// SceneConfig holds scene and selection behavior settings.
type SceneConfig struct {
	// DuplicatePolicy decides what happens when an object id is reused:
	// "replace" overwrites the existing object with a warning, "error"
	// rejects the new one.
	DuplicatePolicy string `yaml:"duplicate_policy"`
	// SelectionPadding expands selection highlight boxes so they do not
	// z-fight with object surfaces.
	SelectionPadding float32 `yaml:"selection_padding"`
	// GroundLevel is the Y level of the working plane used for marquee
	// selection and object placement.
	GroundLevel float32 `yaml:"ground_level"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DuplicatePolicy values accepted in SceneConfig.
const (
	DuplicateReplace = "replace"
	DuplicateError   = "error"
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Width:       1280,
			Height:      720,
			GridVisible: true,
			FPSLimit:    0,
		},
		Scene: SceneConfig{
			DuplicatePolicy:  DuplicateReplace,
			SelectionPadding: 0.05,
			GroundLevel:      0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
