package trace

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/midgard-gesture/internal/gesture"
)

const sampleTrace = `
viewport: {width: 1000, height: 1000}
frames:
  - at: 0s
    touches: [{x: 0, y: 0}, {x: 10, y: 0}]
  - at: 16ms
    touches: [{x: 0, y: 0}, {x: 30, y: 0}]
  - at: 32ms
    viewport: {width: 500, height: 500}
    touches: []
`

func TestDecode(t *testing.T) {
	tr, err := Decode(strings.NewReader(sampleTrace))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if tr.Viewport != (gesture.Viewport{Width: 1000, Height: 1000}) {
		t.Errorf("viewport = %+v", tr.Viewport)
	}
	if len(tr.Frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(tr.Frames))
	}
	if tr.Frames[1].At != 16*time.Millisecond {
		t.Errorf("frame 1 at = %v, want 16ms", tr.Frames[1].At)
	}
	if got := tr.Frames[1].Touches[1]; got != (gesture.TouchPoint{X: 30, Y: 0}) {
		t.Errorf("frame 1 touch 1 = %+v", got)
	}
	if tr.Frames[2].Viewport == nil || tr.Frames[2].Viewport.Width != 500 {
		t.Errorf("frame 2 viewport = %+v", tr.Frames[2].Viewport)
	}
	if len(tr.Frames[2].Touches) != 0 {
		t.Errorf("frame 2 should have no touches, got %v", tr.Frames[2].Touches)
	}
	if tr.Duration() != 32*time.Millisecond {
		t.Errorf("Duration() = %v, want 32ms", tr.Duration())
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "zero viewport",
			input:   "viewport: {width: 0, height: 0}\nframes: []\n",
			wantErr: gesture.ErrInvalidViewport,
		},
		{
			name:    "out of order",
			input:   "viewport: {width: 10, height: 10}\nframes:\n  - at: 2s\n  - at: 1s\n",
			wantErr: ErrOutOfOrder,
		},
		{
			name:  "unknown field",
			input: "viewport: {width: 10, height: 10}\nfingers: 2\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "drag.yaml")
	orig := Drag(gesture.Viewport{Width: 800, Height: 600},
		gesture.TouchPoint{X: 100, Y: 100}, gesture.TouchPoint{X: 300, Y: 150}, 4, 10*time.Millisecond)

	if err := orig.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Viewport != orig.Viewport {
		t.Errorf("viewport = %+v, want %+v", loaded.Viewport, orig.Viewport)
	}
	if len(loaded.Frames) != len(orig.Frames) {
		t.Fatalf("frames = %d, want %d", len(loaded.Frames), len(orig.Frames))
	}
	for i := range orig.Frames {
		if loaded.Frames[i].At != orig.Frames[i].At {
			t.Errorf("frame %d at = %v, want %v", i, loaded.Frames[i].At, orig.Frames[i].At)
		}
		if len(loaded.Frames[i].Touches) != len(orig.Frames[i].Touches) {
			t.Errorf("frame %d touches = %v, want %v", i, loaded.Frames[i].Touches, orig.Frames[i].Touches)
		}
	}
}

func TestEncodeUsesFlowTouches(t *testing.T) {
	tr := &Trace{
		Viewport: gesture.Viewport{Width: 10, Height: 10},
		Frames:   []Frame{{Touches: []gesture.TouchPoint{{X: 1, Y: 2}}}},
	}
	var buf bytes.Buffer
	if err := tr.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), "touches: [{x: 1, y: 2}]") {
		t.Errorf("unexpected encoding:\n%s", buf.String())
	}
}

func TestRecorder(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * 20 * time.Millisecond)
	}

	vp := gesture.Viewport{Width: 640, Height: 480}
	r := NewRecorder(vp, clock)

	touches := []gesture.TouchPoint{{X: 1, Y: 1}}
	r.Record(touches)
	touches[0].X = 99 // recorder must keep its own copy

	r.SetViewport(gesture.Viewport{Width: 480, Height: 640})
	r.Record([]gesture.TouchPoint{{X: 2, Y: 2}})
	r.Record(nil)

	tr := r.Trace()
	if r.Len() != 3 || len(tr.Frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(tr.Frames))
	}
	if tr.Frames[0].At != 0 || tr.Frames[2].At != 40*time.Millisecond {
		t.Errorf("offsets = %v, %v", tr.Frames[0].At, tr.Frames[2].At)
	}
	if tr.Frames[0].Touches[0].X != 1 {
		t.Errorf("recorded touch was aliased: %+v", tr.Frames[0].Touches[0])
	}
	if tr.Frames[1].Viewport == nil || tr.Frames[1].Viewport.Width != 480 {
		t.Errorf("frame 1 should carry the viewport change, got %+v", tr.Frames[1].Viewport)
	}
	if tr.Frames[2].Viewport != nil {
		t.Error("viewport change should only be attached once")
	}
	if err := tr.Validate(); err != nil {
		t.Errorf("recorded trace should validate: %v", err)
	}
}

func TestRecorderViewportBeforeFirstFrame(t *testing.T) {
	r := NewRecorder(gesture.Viewport{Width: 1, Height: 1}, nil)
	r.SetViewport(gesture.Viewport{Width: 320, Height: 240})
	r.Record([]gesture.TouchPoint{{X: 5, Y: 5}})

	tr := r.Trace()
	if tr.Viewport.Width != 320 || tr.Frames[0].Viewport != nil {
		t.Errorf("initial viewport change should replace the trace viewport: %+v", tr)
	}
}

func TestRecorderMarkReset(t *testing.T) {
	r := NewRecorder(gesture.Viewport{Width: 100, Height: 100}, nil)
	r.Record([]gesture.TouchPoint{{X: 1, Y: 1}})
	r.SetViewport(gesture.Viewport{Width: 200, Height: 100})
	r.MarkReset()
	r.Record(nil)

	tr := r.Trace()
	if len(tr.Frames) != 3 || !tr.Frames[1].Reset {
		t.Fatalf("expected a reset marker as frame 1, got %+v", tr.Frames)
	}
	if len(tr.Frames[1].Touches) != 0 {
		t.Errorf("reset frame carries touches: %+v", tr.Frames[1].Touches)
	}
	if vp := tr.Frames[1].Viewport; vp == nil || vp.Width != 200 {
		t.Errorf("pending viewport should ride on the reset frame, got %v", vp)
	}

	var buf bytes.Buffer
	if err := tr.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), "reset: true") {
		t.Errorf("encoded trace lacks the reset marker:\n%s", buf.String())
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !decoded.Frames[1].Reset || decoded.Frames[0].Reset {
		t.Errorf("reset flags after round trip: %v %v", decoded.Frames[0].Reset, decoded.Frames[1].Reset)
	}
}

func TestValidateRejectsResetWithTouches(t *testing.T) {
	tr := &Trace{
		Viewport: gesture.Viewport{Width: 10, Height: 10},
		Frames:   []Frame{{Reset: true, Touches: []gesture.TouchPoint{{X: 1, Y: 1}}}},
	}
	if err := tr.Validate(); !errors.Is(err, ErrResetWithTouches) {
		t.Errorf("Validate() = %v, want ErrResetWithTouches", err)
	}
}
