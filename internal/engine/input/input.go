// Package input turns SDL2 events into window events and touch frames.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-gesture/internal/gesture"
)

// EventType identifies a non-touch window event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed window event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

type fingerAction uint8

const (
	fingerDown fingerAction = iota
	fingerMotion
	fingerUp
)

// TouchFrame is the set of fingers down after one finger event, in pixels of
// the window size at the time of the event.
type TouchFrame struct {
	Viewport gesture.Viewport
	Touches  []gesture.TouchPoint
}

type finger struct {
	id   sdl.FingerID
	x, y float32 // normalized to [0, 1] by SDL
}

// Input polls SDL and tracks active fingers. Every finger event produces one
// touch frame holding all fingers still down, like browser touch events.
type Input struct {
	events  []Event
	frames  []TouchFrame
	fingers []finger // in touch-down order
	width   int
	height  int
}

// New creates an input handler for a window of the given size.
func New(width, height int) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		width:  width,
		height: height,
	}
}

// Update polls SDL events. Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.frames = i.frames[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.resize(int(e.Data1), int(e.Data2))
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
			}

		case *sdl.TouchFingerEvent:
			switch e.Type {
			case sdl.FINGERDOWN:
				i.handleFinger(fingerDown, e.FingerID, e.X, e.Y)
			case sdl.FINGERMOTION:
				i.handleFinger(fingerMotion, e.FingerID, e.X, e.Y)
			case sdl.FINGERUP:
				i.handleFinger(fingerUp, e.FingerID, e.X, e.Y)
			}
		}
	}

	return false
}

func (i *Input) resize(width, height int) {
	if width == i.width && height == i.height {
		return
	}
	i.width, i.height = width, height
	i.events = append(i.events, Event{Type: EventWindowResize, Width: width, Height: height})
}

// handleFinger updates the finger set and snapshots it as a frame.
func (i *Input) handleFinger(action fingerAction, id sdl.FingerID, x, y float32) {
	idx := -1
	for n := range i.fingers {
		if i.fingers[n].id == id {
			idx = n
			break
		}
	}

	switch action {
	case fingerDown, fingerMotion:
		if idx < 0 {
			i.fingers = append(i.fingers, finger{id: id, x: x, y: y})
		} else {
			i.fingers[idx].x, i.fingers[idx].y = x, y
		}
	case fingerUp:
		if idx < 0 {
			return
		}
		i.fingers = append(i.fingers[:idx], i.fingers[idx+1:]...)
	}

	i.frames = append(i.frames, TouchFrame{Viewport: i.Viewport(), Touches: i.Touches()})
}

// Touches returns the active fingers in window pixels.
func (i *Input) Touches() []gesture.TouchPoint {
	touches := make([]gesture.TouchPoint, len(i.fingers))
	for n, f := range i.fingers {
		touches[n] = gesture.TouchPoint{
			X: float64(f.x) * float64(i.width),
			Y: float64(f.y) * float64(i.height),
		}
	}
	return touches
}

// Events returns the window events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// TouchFrames returns the touch frames from the last Update, oldest first.
// Resizes between finger events show up as a change of frame viewport.
func (i *Input) TouchFrames() []TouchFrame {
	return i.frames
}

// Viewport returns the current window size as a gesture viewport.
func (i *Input) Viewport() gesture.Viewport {
	return gesture.Viewport{Width: float64(i.width), Height: float64(i.height)}
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
