package trace

import (
	gomath "math"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/midgard-gesture/internal/gesture"
	"github.com/Faultbox/midgard-gesture/internal/scene"
	"github.com/Faultbox/midgard-gesture/pkg/math"
)

func names(events []gesture.Event) string {
	s := make([]string, len(events))
	for i, ev := range events {
		s[i] = ev.Name
	}
	return strings.Join(s, ",")
}

func TestReplayDecodedTrace(t *testing.T) {
	tr, err := Decode(strings.NewReader(sampleTrace))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	m := gesture.NewManager(gesture.Viewport{Width: 1, Height: 1}, gesture.DefaultConfig())
	obj := scene.NewObject("cube", math.Vec3{X: 1, Y: 1, Z: 1})

	events, err := Replay(tr, m, obj)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	if got := names(events); got != "twofingerstart,twofingermove,twofingerend" {
		t.Errorf("events = %s", got)
	}
	// Spread 5 -> 15 raw at scale 0.001: factor 1 + 0.01/0.005 = 3.
	if gomath.Abs(obj.ScaleFactor()-3) > 1e-9 {
		t.Errorf("scale factor = %v, want 3", obj.ScaleFactor())
	}
	if !obj.Scale().ApproxEqual(math.Vec3{X: 3, Y: 3, Z: 3}, 1e-9) {
		t.Errorf("scale = %v, want {3 3 3}", obj.Scale())
	}
	s, _ := m.Session(obj)
	if vp := s.Detector().Viewport(); vp.Width != 500 {
		t.Errorf("frame viewport override not applied, got %+v", vp)
	}
}

func TestReplayDrag(t *testing.T) {
	vp := gesture.Viewport{Width: 800, Height: 600}
	tr := Drag(vp, gesture.TouchPoint{X: 0, Y: 0}, gesture.TouchPoint{X: 140, Y: 0}, 7, 16*time.Millisecond)

	m := gesture.NewManager(vp, gesture.DefaultConfig())
	obj := scene.NewObject("cube", math.Vec3{X: 1, Y: 1, Z: 1})
	events, err := Replay(tr, m, obj)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	if len(events) != 9 {
		t.Fatalf("expected start, 7 moves and end, got %s", names(events))
	}

	// The drag totals 140 raw pixels: a single yaw of 140*scale*factor.
	want := math.QuatFromAxisAngle(math.AxisY, 140*vp.ScreenScale()*5)
	got := obj.Rotation
	if gomath.Abs(got.Y-want.Y) > 1e-9 || gomath.Abs(got.W-want.W) > 1e-9 {
		t.Errorf("rotation = %+v, want %+v", got, want)
	}
}

func TestReplayPinchClamps(t *testing.T) {
	vp := gesture.Viewport{Width: 1000, Height: 1000}
	tr := Pinch(vp, gesture.TouchPoint{X: 500, Y: 500}, 50, 5000, 20, 16*time.Millisecond)

	m := gesture.NewManager(vp, gesture.DefaultConfig())
	obj := scene.NewObject("cube", math.Vec3{X: 2, Y: 2, Z: 2})
	if _, err := Replay(tr, m, obj); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	if obj.ScaleFactor() != 8 {
		t.Errorf("scale factor = %v, want max 8", obj.ScaleFactor())
	}
	if obj.Scale() != (math.Vec3{X: 16, Y: 16, Z: 16}) {
		t.Errorf("scale = %v, want {16 16 16}", obj.Scale())
	}
}

func TestReplayInvalidTrace(t *testing.T) {
	m := gesture.NewManager(gesture.Viewport{Width: 1, Height: 1}, gesture.DefaultConfig())
	obj := scene.NewObject("cube", math.Vec3{X: 1, Y: 1, Z: 1})
	if _, err := Replay(&Trace{}, m, obj); err == nil {
		t.Error("expected error for trace without viewport")
	}
	if m.Len() != 0 {
		t.Error("invalid trace should not attach the target")
	}
}

func TestReplayReset(t *testing.T) {
	vp := gesture.Viewport{Width: 1000, Height: 1000}
	tr := Pinch(vp, gesture.TouchPoint{X: 500, Y: 500}, 50, 100, 1, 16*time.Millisecond)
	// Reset mid-pinch: drop the final release, then drag once.
	tr.Frames = tr.Frames[:len(tr.Frames)-1]
	tr.Frames = append(tr.Frames, Frame{At: 40 * time.Millisecond, Reset: true})
	drag := Drag(vp, gesture.TouchPoint{X: 0, Y: 0}, gesture.TouchPoint{X: 100, Y: 0}, 1, 16*time.Millisecond)
	for _, f := range drag.Frames {
		f.At += 50 * time.Millisecond
		tr.Frames = append(tr.Frames, f)
	}

	m := gesture.NewManager(vp, gesture.DefaultConfig())
	obj := scene.NewObject("cube", math.Vec3{X: 1, Y: 1, Z: 1})
	events, err := Replay(tr, m, obj)
	if err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	// The pinch never ends: the reset drops it silently.
	want := "twofingerstart,twofingermove,onefingerstart,onefingermove,onefingerend"
	if got := names(events); got != want {
		t.Errorf("events = %s, want %s", got, want)
	}
	if obj.ScaleFactor() != 1 || obj.Scale() != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("scale after reset = %v factor %v, want unit", obj.Scale(), obj.ScaleFactor())
	}
	// Only the drag after the reset rotates: 100 * 0.001 * 5 = 0.5 rad about Y.
	wantRot := math.QuatFromAxisAngle(math.AxisY, 0.5)
	if gomath.Abs(obj.Rotation.W-wantRot.W) > 1e-9 || gomath.Abs(obj.Rotation.Y-wantRot.Y) > 1e-9 {
		t.Errorf("rotation = %v, want %v", obj.Rotation, wantRot)
	}
}
