// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/midgard-gesture/internal/gesture"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "MIDGARD_GESTURE_"

// Config holds all settings.
type Config struct {
	Window  WindowConfig   `yaml:"window" envPrefix:"WINDOW_"`
	Gesture gesture.Config `yaml:"gesture"`
	Trace   TraceConfig    `yaml:"trace" envPrefix:"TRACE_"`
	Logging LoggingConfig  `yaml:"logging" envPrefix:"LOG_"`
}

// WindowConfig holds the live viewer window settings.
type WindowConfig struct {
	Title        string `yaml:"title" env:"TITLE"`
	Width        int    `yaml:"width" env:"WIDTH"`
	Height       int    `yaml:"height" env:"HEIGHT"`
	Fullscreen   bool   `yaml:"fullscreen" env:"FULLSCREEN"`
	MouseAsTouch bool   `yaml:"mouse_as_touch" env:"MOUSE_AS_TOUCH"`
}

// TraceConfig controls recording of live touch frames.
type TraceConfig struct {
	RecordPath string `yaml:"record_path" env:"RECORD_PATH"` // empty disables recording
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" env:"LEVEL"`
	LogFile string `yaml:"log_file" env:"FILE"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:        "Midgard Gesture",
			Width:        1280,
			Height:       720,
			MouseAsTouch: true,
		},
		Gesture: gesture.DefaultConfig(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if err := c.Gesture.Validate(); err != nil {
		return err
	}
	return nil
}
