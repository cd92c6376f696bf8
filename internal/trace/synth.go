package trace

import (
	"time"

	"github.com/Faultbox/midgard-gesture/internal/gesture"
)

// Drag builds a one-finger trace moving from one point to another in steps
// moves, followed by a release.
func Drag(vp gesture.Viewport, from, to gesture.TouchPoint, steps int, interval time.Duration) *Trace {
	steps = max(steps, 1)
	t := &Trace{Viewport: vp}
	for i := 0; i <= steps; i++ {
		k := float64(i) / float64(steps)
		p := gesture.TouchPoint{
			X: from.X + (to.X-from.X)*k,
			Y: from.Y + (to.Y-from.Y)*k,
		}
		t.Frames = append(t.Frames, Frame{
			At:      time.Duration(i) * interval,
			Touches: []gesture.TouchPoint{p},
		})
	}
	return t.release(interval)
}

// Pinch builds a two-finger horizontal pinch around center, moving each
// finger from fromRadius to toRadius away from it, followed by a release.
// The sampled spread equals the radius in raw units.
func Pinch(vp gesture.Viewport, center gesture.TouchPoint, fromRadius, toRadius float64, steps int, interval time.Duration) *Trace {
	steps = max(steps, 1)
	t := &Trace{Viewport: vp}
	for i := 0; i <= steps; i++ {
		k := float64(i) / float64(steps)
		r := fromRadius + (toRadius-fromRadius)*k
		t.Frames = append(t.Frames, Frame{
			At: time.Duration(i) * interval,
			Touches: []gesture.TouchPoint{
				{X: center.X - r, Y: center.Y},
				{X: center.X + r, Y: center.Y},
			},
		})
	}
	return t.release(interval)
}

func (t *Trace) release(interval time.Duration) *Trace {
	t.Frames = append(t.Frames, Frame{
		At:      t.Duration() + interval,
		Touches: []gesture.TouchPoint{},
	})
	return t
}
