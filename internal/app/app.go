// Package app runs the live viewer: an SDL window whose touch input rotates
// and scales a scene object.
package app

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gesture/internal/config"
	"github.com/Faultbox/midgard-gesture/internal/engine/input"
	"github.com/Faultbox/midgard-gesture/internal/engine/window"
)

// App is the live viewer instance.
type App struct {
	config  *config.Config
	running bool
	window  *window.Window
	input   *input.Input
	viewer  *Viewer
	log     *zap.Logger
}

// New creates the window and attaches the viewer object.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	a := &App{
		config: cfg,
		log:    log,
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:        cfg.Window.Title,
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Fullscreen:   cfg.Window.Fullscreen,
		MouseAsTouch: cfg.Window.MouseAsTouch,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Fullscreen may differ from the requested size.
	width, height := a.window.Size()
	a.input = input.New(width, height)
	a.viewer = NewViewer(a.input.Viewport(), cfg.Gesture, cfg.Trace.RecordPath != "", log)

	log.Info("viewer initialized")
	return a, nil
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		if a.input.Update() {
			a.running = false
			break
		}

		// Touch frames carry their own viewport, so resizes apply in order.
		if err := a.viewer.Feed(a.input.TouchFrames()); err != nil {
			return fmt.Errorf("touch frame: %w", err)
		}

		for _, event := range a.input.Events() {
			switch event.Type {
			case input.EventWindowResize:
				a.log.Debug("window resized", zap.Int("width", event.Width), zap.Int("height", event.Height))
			case input.EventKeyDown:
				switch event.Key {
				case sdl.SCANCODE_ESCAPE:
					a.running = false
				case sdl.SCANCODE_R:
					a.viewer.Reset()
				}
			}
		}

		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		sdl.Delay(16)
	}

	return nil
}

// Close saves the recorded trace and releases the window.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.viewer != nil && a.config.Trace.RecordPath != "" {
		if err := a.viewer.SaveTrace(a.config.Trace.RecordPath); err != nil {
			a.log.Error("failed to save trace", zap.Error(err))
		}
	}
	if a.window != nil {
		a.window.Close()
	}
}

// render shades the window by the object's scale factor and title-bars its
// transform; there is no 3D output.
func (a *App) render() error {
	obj := a.viewer.Object()
	cfg := a.config.Gesture

	shade := 0.0
	if cfg.MaxScale > cfg.MinScale {
		shade = (obj.ScaleFactor() - cfg.MinScale) / (cfg.MaxScale - cfg.MinScale)
	}
	level := uint8(32 + gomath.Round(shade*192))

	a.window.SetTitle(fmt.Sprintf("%s - %s", a.config.Window.Title, obj))
	return a.window.Clear(level/2, level/2, level)
}
