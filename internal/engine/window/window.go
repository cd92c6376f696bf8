// Package window handles SDL2 window creation for touch input.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
)

func init() {
	// SDL event polling must happen on the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool

	// MouseAsTouch makes SDL report the left mouse button as a finger, so a
	// desktop without a touch screen can drive one-finger gestures.
	MouseAsTouch bool
}

// Window wraps an SDL2 window.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	log       *zap.Logger
}

// New creates a new window. A nil logger disables logging.
func New(cfg Config, log *zap.Logger) (*Window, error) {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Window{
		config: cfg,
		log:    log,
	}

	if cfg.MouseAsTouch {
		sdl.SetHint("SDL_MOUSE_TOUCH_EVENTS", "1")
	}

	log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	width, height := w.Size()
	log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Int("touch_devices", sdl.GetNumTouchDevices()),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// Clear fills the window with a solid color and presents it.
func (w *Window) Clear(r, g, b uint8) error {
	surface, err := w.sdlWindow.GetSurface()
	if err != nil {
		return fmt.Errorf("window surface: %w", err)
	}
	if err := surface.FillRect(nil, sdl.MapRGB(surface.Format, r, g, b)); err != nil {
		return fmt.Errorf("fill window: %w", err)
	}
	return w.sdlWindow.UpdateSurface()
}

// Size returns the current window size.
func (w *Window) Size() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
