package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagWidth  = flag.Int("width", 0, "Viewport width")
	flagHeight = flag.Int("height", 0, "Viewport height")
	flagNoGrid = flag.Bool("nogrid", false, "Hide the editor grid")
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
	if *flagWidth > 0 {
		cfg.Editor.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Editor.Height = *flagHeight
	}
	if *flagNoGrid {
		cfg.Editor.GridVisible = false
	}
}
