// Package gesture turns raw multi-touch frames into named gesture events and
// applies them to transformable targets.
//
// A Detector keeps the summary of the previous frame and classifies every new
// frame as the end, start or continuation of a gesture. A Handler maps the
// resulting move events to rotation (one finger) and uniform scale (two
// fingers). A Manager binds one Detector and Handler to each attached target.
package gesture

import (
	"errors"
	gomath "math"
	"time"

	"github.com/Faultbox/midgard-gesture/pkg/math"
)

// ErrInvalidViewport is returned when the viewport has no usable size.
var ErrInvalidViewport = errors.New("gesture: viewport must have positive finite size")

// TouchPoint is one active contact in raw screen coordinates.
type TouchPoint struct {
	X, Y float64
}

// Viewport is the size of the surface receiving touches, in the same units
// as TouchPoint.
type Viewport struct {
	Width, Height float64
}

// ScreenScale returns the factor that maps raw coordinates to the
// resolution-independent space used by TouchSample.Centroid and Spread.
func (v Viewport) ScreenScale() float64 {
	return 2 / (v.Width + v.Height)
}

// Validate reports ErrInvalidViewport for zero, negative or non-finite sizes.
func (v Viewport) Validate() error {
	if !(v.Width > 0) || !(v.Height > 0) || gomath.IsInf(v.Width, 0) || gomath.IsInf(v.Height, 0) {
		return ErrInvalidViewport
	}
	return nil
}

// TouchSample summarizes all active touches of one frame.
//
// The Start* fields are only set on the sample that opens a gesture and are
// carried unchanged through every following move.
type TouchSample struct {
	Count       int
	CentroidRaw math.Vec2
	Centroid    math.Vec2

	// Spread is the mean distance of the touches from CentroidRaw, scaled
	// like Centroid. Only valid when HasSpread is set (Count >= 2).
	Spread    float64
	HasSpread bool

	StartTime      time.Time
	StartPosition  math.Vec2
	StartSpread    float64
	HasStartSpread bool
}

// Sample reduces the active touches to a TouchSample. It returns false when no
// usable touch remains, which means no gesture is active. Points with NaN or
// infinite coordinates are dropped, and so is a frame whose summary does not
// fit in a float64.
//
// The viewport is not validated here; callers must check it first.
func Sample(touches []TouchPoint, vp Viewport) (TouchSample, bool) {
	// Running mean, so large but finite coordinates do not overflow a sum.
	var raw math.Vec2
	count := 0
	for _, t := range touches {
		p := math.Vec2{X: t.X, Y: t.Y}
		if !p.IsFinite() {
			continue
		}
		count++
		raw = raw.Add(p.Sub(raw).Scale(1 / float64(count)))
	}
	if count == 0 || !raw.IsFinite() {
		return TouchSample{}, false
	}

	scale := vp.ScreenScale()
	s := TouchSample{
		Count:       count,
		CentroidRaw: raw,
		Centroid:    raw.Scale(scale),
	}

	if count >= 2 {
		var mean float64
		n := 0
		for _, t := range touches {
			p := math.Vec2{X: t.X, Y: t.Y}
			if !p.IsFinite() {
				continue
			}
			n++
			mean += (p.Distance(raw) - mean) / float64(n)
		}
		s.Spread = mean * scale
		s.HasSpread = true
	}

	if !s.Centroid.IsFinite() || gomath.IsInf(s.Spread, 0) || gomath.IsNaN(s.Spread) {
		return TouchSample{}, false
	}
	return s, true
}
