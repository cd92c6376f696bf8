package trace

import (
	"time"

	"github.com/Faultbox/midgard-gesture/internal/gesture"
)

// Recorder accumulates live frames into a Trace.
type Recorder struct {
	trace       Trace
	now         func() time.Time
	start       time.Time
	pendingView *gesture.Viewport
}

// NewRecorder starts an empty recording. A nil clock means time.Now.
func NewRecorder(vp gesture.Viewport, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{trace: Trace{Viewport: vp}, now: now}
}

// SetViewport records a viewport change, attached to the next frame.
func (r *Recorder) SetViewport(vp gesture.Viewport) {
	if len(r.trace.Frames) == 0 {
		r.trace.Viewport = vp
		return
	}
	r.pendingView = &vp
}

// Record appends a copy of touches as the next frame.
func (r *Recorder) Record(touches []gesture.TouchPoint) {
	r.append(Frame{Touches: append([]gesture.TouchPoint{}, touches...)})
}

// MarkReset appends a reset frame.
func (r *Recorder) MarkReset() {
	r.append(Frame{Touches: []gesture.TouchPoint{}, Reset: true})
}

func (r *Recorder) append(f Frame) {
	now := r.now()
	if len(r.trace.Frames) == 0 {
		r.start = now
	}
	f.At = now.Sub(r.start)
	f.Viewport = r.pendingView
	r.trace.Frames = append(r.trace.Frames, f)
	r.pendingView = nil
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.trace.Frames)
}

// Trace returns the recording so far.
func (r *Recorder) Trace() *Trace {
	t := r.trace
	t.Frames = append([]Frame(nil), r.trace.Frames...)
	return &t
}
