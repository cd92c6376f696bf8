// Package trace stores touch input as YAML so gestures can be recorded from
// the live viewer and replayed deterministically.
package trace

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-gesture/internal/gesture"
)

// ErrOutOfOrder is returned when frame offsets decrease.
var ErrOutOfOrder = errors.New("trace: frame offsets must not decrease")

// ErrResetWithTouches is returned for a reset frame that also carries touches.
var ErrResetWithTouches = errors.New("trace: reset frame must not carry touches")

// Trace is a recorded sequence of touch frames.
type Trace struct {
	Viewport gesture.Viewport `yaml:"viewport"`
	Frames   []Frame          `yaml:"frames"`
}

// Frame is the set of active touches after one input event.
type Frame struct {
	// At is the offset from the first frame.
	At time.Duration `yaml:"at"`
	// Viewport, when set, replaces the trace viewport from this frame on.
	Viewport *gesture.Viewport    `yaml:"viewport,omitempty"`
	Touches  []gesture.TouchPoint `yaml:"touches,flow"`
	// Reset marks the point where the viewer put the object back to its
	// initial transform and dropped any gesture in progress.
	Reset bool `yaml:"reset,omitempty"`
}

// Validate checks the viewports and frame ordering.
func (t *Trace) Validate() error {
	if err := t.Viewport.Validate(); err != nil {
		return err
	}
	var last time.Duration
	for i, f := range t.Frames {
		if f.At < last {
			return fmt.Errorf("frame %d at %v: %w", i, f.At, ErrOutOfOrder)
		}
		last = f.At
		if f.Reset && len(f.Touches) > 0 {
			return fmt.Errorf("frame %d: %w", i, ErrResetWithTouches)
		}
		if f.Viewport != nil {
			if err := f.Viewport.Validate(); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
		}
	}
	return nil
}

// Duration returns the offset of the last frame.
func (t *Trace) Duration() time.Duration {
	if len(t.Frames) == 0 {
		return 0
	}
	return t.Frames[len(t.Frames)-1].At
}

// Decode reads and validates a YAML trace.
func Decode(r io.Reader) (*Trace, error) {
	var t Trace
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding trace: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Encode writes the trace as YAML.
func (t *Trace) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return err
	}
	return enc.Close()
}

// Load reads a trace file.
func Load(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Save writes the trace to path, creating parent directories.
func (t *Trace) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := t.Encode(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
