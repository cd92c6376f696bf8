package config

import "flag"

var (
	flagConfig         = flag.String("config", "", "Path to config file")
	flagDebug          = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed       = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen     = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth          = flag.Int("width", 0, "Window width")
	flagHeight         = flag.Int("height", 0, "Window height")
	flagRecord         = flag.String("record", "", "Record touch frames to this trace file")
	flagRotationFactor = flag.Float64("rotation-factor", 0, "Radians of rotation per unit of normalized drag")
	flagSaveConfig     = flag.Bool("save-config", false, "Write the effective config to the user config directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagRecord != "" {
		cfg.Trace.RecordPath = *flagRecord
	}
	if *flagRotationFactor != 0 {
		cfg.Gesture.RotationFactor = *flagRotationFactor
	}
}
