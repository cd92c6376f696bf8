package gesture

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Option configures a Detector, Handler or Manager.
type Option func(*options)

type options struct {
	log *zap.Logger
	now func() time.Time
}

func buildOptions(opts []Option) options {
	o := options{
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for gesture transitions and no-op reports.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithClock overrides the time source used to stamp StartTime.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// --- Listener registry ---

type listener struct {
	id uint32
	fn func(Event)
}

type listenerRegistry struct {
	listeners []listener
	nextID    uint32
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	id  uint32
	reg *listenerRegistry
}

// Remove unregisters the listener so it no longer fires.
func (h ListenerHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.listeners
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			h.reg.listeners = s[:len(s)-1]
			return
		}
	}
}

// --- Detector ---

// Detector is the gesture state machine for one touch surface. It retains at
// most one TouchSample, the summary of the gesture in progress.
//
// A Detector is not safe for concurrent use; frames must be fed one at a time.
type Detector struct {
	viewport Viewport
	previous *TouchSample
	handlers listenerRegistry
	opts     options
}

// NewDetector creates an idle detector for the given viewport.
func NewDetector(vp Viewport, opts ...Option) *Detector {
	return &Detector{
		viewport: vp,
		opts:     buildOptions(opts),
	}
}

// On registers a listener called synchronously for every emitted event, in
// registration order.
func (d *Detector) On(fn func(Event)) ListenerHandle {
	d.handlers.nextID++
	id := d.handlers.nextID
	d.handlers.listeners = append(d.handlers.listeners, listener{id: id, fn: fn})
	return ListenerHandle{id: id, reg: &d.handlers}
}

// SetViewport changes the viewport used for subsequent frames.
func (d *Detector) SetViewport(vp Viewport) {
	d.viewport = vp
}

// Viewport returns the current viewport.
func (d *Detector) Viewport() Viewport {
	return d.viewport
}

// Active returns a copy of the retained sample, if a gesture is in progress.
func (d *Detector) Active() (TouchSample, bool) {
	if d.previous == nil {
		return TouchSample{}, false
	}
	return *d.previous, true
}

// Reset drops the gesture in progress without emitting an end event.
func (d *Detector) Reset() {
	d.previous = nil
}

// Frame processes one input frame and returns the events it produced, in
// emission order. A touch count change yields an end event for the old count
// followed by a start event for the new one.
func (d *Detector) Frame(touches []TouchPoint) ([]Event, error) {
	if err := d.viewport.Validate(); err != nil {
		return nil, fmt.Errorf("frame with viewport %vx%v: %w", d.viewport.Width, d.viewport.Height, err)
	}

	current, ok := Sample(touches, d.viewport)
	previous := d.previous

	continues := previous != nil && ok && current.Count == previous.Count
	ended := previous != nil && !continues
	started := ok && !continues

	var events []Event

	if ended {
		events = append(events, Event{
			Name:        EventName(previous.Count, PhaseEnd),
			Phase:       PhaseEnd,
			TouchSample: *previous,
		})
		d.opts.log.Debug("gesture ended",
			zap.Int("touches", previous.Count),
			zap.Duration("duration", d.opts.now().Sub(previous.StartTime)),
		)
		d.previous = nil
	}

	if started {
		current.StartTime = d.opts.now()
		current.StartPosition = current.Centroid
		current.StartSpread = current.Spread
		current.HasStartSpread = current.HasSpread

		events = append(events, Event{
			Name:        EventName(current.Count, PhaseStart),
			Phase:       PhaseStart,
			TouchSample: current,
		})
		d.opts.log.Debug("gesture started",
			zap.Int("touches", current.Count),
			zap.Float64("x", current.Centroid.X),
			zap.Float64("y", current.Centroid.Y),
		)
		retained := current
		d.previous = &retained
	}

	if continues {
		ev := Event{
			Name:           EventName(current.Count, PhaseMove),
			Phase:          PhaseMove,
			PositionChange: current.Centroid.Sub(previous.Centroid),
		}
		if current.HasSpread && previous.HasSpread {
			ev.SpreadChange = current.Spread - previous.Spread
			ev.HasSpreadChange = true
		}

		// Update in place so the Start* fields survive.
		previous.Count = current.Count
		previous.CentroidRaw = current.CentroidRaw
		previous.Centroid = current.Centroid
		previous.Spread = current.Spread
		previous.HasSpread = current.HasSpread

		ev.TouchSample = *previous
		events = append(events, ev)
	}

	for _, ev := range events {
		d.dispatch(ev)
	}
	return events, nil
}

// dispatch iterates over a snapshot so listeners may Remove themselves.
func (d *Detector) dispatch(ev Event) {
	ls := append([]listener(nil), d.handlers.listeners...)
	for _, l := range ls {
		l.fn(ev)
	}
}
