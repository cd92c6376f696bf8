package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gesture/internal/engine/input"
	"github.com/Faultbox/midgard-gesture/internal/gesture"
	"github.com/Faultbox/midgard-gesture/internal/scene"
	"github.com/Faultbox/midgard-gesture/internal/trace"
	"github.com/Faultbox/midgard-gesture/pkg/math"
)

// Viewer feeds touch frames to one scene object. It holds everything the live
// loop does that does not need SDL.
type Viewer struct {
	manager  *gesture.Manager
	object   *scene.Object
	recorder *trace.Recorder
	viewport gesture.Viewport
	log      *zap.Logger
}

// NewViewer attaches a unit-scale object to a fresh gesture manager. When
// record is set every frame is also kept for a trace.
func NewViewer(vp gesture.Viewport, cfg gesture.Config, record bool, log *zap.Logger) *Viewer {
	if log == nil {
		log = zap.NewNop()
	}
	v := &Viewer{
		manager:  gesture.NewManager(vp, cfg, gesture.WithLogger(log.Named("gesture"))),
		object:   scene.NewObject("model", math.Vec3{X: 1, Y: 1, Z: 1}),
		viewport: vp,
		log:      log,
	}
	if record {
		v.recorder = trace.NewRecorder(vp, time.Now)
	}

	hc := v.manager.Handler().Config()
	log.Debug("gesture handler",
		zap.Float64("rotation_factor", hc.RotationFactor),
		zap.Float64("min_scale", hc.MinScale),
		zap.Float64("max_scale", hc.MaxScale),
	)

	v.attach()
	return v
}

func (v *Viewer) attach() {
	s := v.manager.Attach(v.object)
	s.On(v.logEvent)
}

// Object returns the object being transformed.
func (v *Viewer) Object() *scene.Object {
	return v.object
}

// Recorder returns the trace recorder, or nil when recording is off.
func (v *Viewer) Recorder() *trace.Recorder {
	return v.recorder
}

// Viewport returns the viewport the next frame is sampled with.
func (v *Viewer) Viewport() gesture.Viewport {
	return v.viewport
}

// Feed handles frames from one input poll in order, switching viewport
// whenever a frame was captured at a different window size.
func (v *Viewer) Feed(frames []input.TouchFrame) error {
	for _, f := range frames {
		if f.Viewport != v.viewport {
			v.setViewport(f.Viewport)
		}
		if _, err := v.HandleFrame(f.Touches); err != nil {
			return err
		}
	}
	return nil
}

// HandleFrame runs one touch frame through the detector.
func (v *Viewer) HandleFrame(touches []gesture.TouchPoint) ([]gesture.Event, error) {
	if v.recorder != nil {
		v.recorder.Record(touches)
	}
	return v.manager.Frame(v.object, touches)
}

// Resize updates the viewport used for subsequent frames.
func (v *Viewer) Resize(width, height int) {
	v.setViewport(gesture.Viewport{Width: float64(width), Height: float64(height)})
}

func (v *Viewer) setViewport(vp gesture.Viewport) {
	v.viewport = vp
	v.manager.SetViewport(vp)
	if v.recorder != nil {
		v.recorder.SetViewport(vp)
	}
	v.log.Debug("viewport resized", zap.Float64("width", vp.Width), zap.Float64("height", vp.Height))
}

// Reset puts the object back to its initial transform and drops the gesture
// in progress. The reset is recorded so replays match the live session.
func (v *Viewer) Reset() {
	if v.recorder != nil {
		v.recorder.MarkReset()
	}
	v.object.Reset()
	v.manager.Detach(v.object)
	v.attach()
	v.log.Info("object reset")
}

// SaveTrace writes the recorded frames. It is a no-op without a recorder or
// when nothing was recorded.
func (v *Viewer) SaveTrace(path string) error {
	if v.recorder == nil || v.recorder.Len() == 0 {
		return nil
	}
	if err := v.recorder.Trace().Save(path); err != nil {
		return err
	}
	v.log.Info("trace saved", zap.String("path", path), zap.Int("frames", v.recorder.Len()))
	return nil
}

func (v *Viewer) logEvent(ev gesture.Event) {
	switch ev.Phase {
	case gesture.PhaseStart, gesture.PhaseEnd:
		v.log.Info(ev.Name, zap.Int("touches", ev.Count))
	case gesture.PhaseMove:
		v.log.Debug(ev.Name,
			zap.Stringer("object", v.object),
			zap.Float64("scale_factor", v.object.ScaleFactor()),
		)
	}
}
