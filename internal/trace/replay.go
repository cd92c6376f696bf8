package trace

import (
	"fmt"

	"github.com/Faultbox/midgard-gesture/internal/gesture"
)

// Resetter is implemented by targets that can return to their initial
// transform. Replay calls it on reset frames.
type Resetter interface {
	Reset()
}

// Replay feeds every frame of t to the target's session, attaching the target
// first if needed, and returns all emitted events in order. Frame offsets are
// not waited for.
//
// A reset frame resets the target when it implements Resetter and re-attaches
// it, so the gesture in progress is dropped without an end event.
func Replay(t *Trace, m *gesture.Manager, target gesture.Target) ([]gesture.Event, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	m.SetViewport(t.Viewport)
	m.Attach(target)

	var all []gesture.Event
	for i, f := range t.Frames {
		if f.Viewport != nil {
			m.SetViewport(*f.Viewport)
		}
		if f.Reset {
			if r, ok := target.(Resetter); ok {
				r.Reset()
			}
			m.Detach(target)
			m.Attach(target)
			continue
		}
		events, err := m.Frame(target, f.Touches)
		if err != nil {
			return all, fmt.Errorf("frame %d: %w", i, err)
		}
		all = append(all, events...)
	}
	return all, nil
}
