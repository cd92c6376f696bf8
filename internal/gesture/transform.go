package gesture

import (
	"errors"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gesture/pkg/math"
)

// Target is the capability surface a Handler needs from a transformable
// object. Rotation angles are in radians.
type Target interface {
	Visible() bool
	SetVisible(bool)

	ScaleFactor() float64
	SetScaleFactor(float64)

	InitialScale() math.Vec3
	SetInitialScale(math.Vec3)

	Scale() math.Vec3
	SetScale(math.Vec3)

	RotateX(angle float64)
	RotateY(angle float64)
}

// Config holds the handler sensitivity and scale bounds.
type Config struct {
	RotationFactor float64 `yaml:"rotation_factor" env:"ROTATION_FACTOR"`
	MinScale       float64 `yaml:"min_scale" env:"MIN_SCALE"`
	MaxScale       float64 `yaml:"max_scale" env:"MAX_SCALE"`
}

// DefaultConfig returns the stock sensitivity and scale range.
func DefaultConfig() Config {
	return Config{
		RotationFactor: 5,
		MinScale:       0.3,
		MaxScale:       8,
	}
}

// ErrInvalidConfig is wrapped by Config.Validate failures.
var ErrInvalidConfig = errors.New("gesture: invalid config")

// Validate checks that the values are finite and the scale range is usable.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"rotation_factor": c.RotationFactor,
		"min_scale":       c.MinScale,
		"max_scale":       c.MaxScale,
	} {
		if gomath.IsNaN(v) || gomath.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, name)
		}
	}
	if c.MinScale <= 0 {
		return fmt.Errorf("%w: min_scale %v must be positive", ErrInvalidConfig, c.MinScale)
	}
	if c.MinScale > c.MaxScale {
		return fmt.Errorf("%w: min_scale %v exceeds max_scale %v", ErrInvalidConfig, c.MinScale, c.MaxScale)
	}
	return nil
}

// Handler applies move events to a Target. It keeps no per-target state;
// everything it needs lives on the target itself.
type Handler struct {
	cfg Config
	log *zap.Logger
}

// NewHandler creates a handler with the given configuration.
func NewHandler(cfg Config, opts ...Option) *Handler {
	o := buildOptions(opts)
	return &Handler{cfg: cfg, log: o.log}
}

// Config returns the handler configuration.
func (h *Handler) Config() Config {
	return h.cfg
}

// Prepare resets the target's gesture fields. Call it once when the target
// is attached.
func (h *Handler) Prepare(t Target) {
	t.SetVisible(true)
	t.SetScaleFactor(1)
	t.SetInitialScale(t.Scale())
}

// Apply maps an event to a target mutation and reports whether the target
// changed. Only one-finger and two-finger moves have an effect.
func (h *Handler) Apply(ev Event, t Target) bool {
	switch ev.Name {
	case OneFingerMove:
		return h.rotate(ev, t)
	case TwoFingerMove:
		return h.scale(ev, t)
	default:
		return false
	}
}

// rotate turns the target about Y, then X.
func (h *Handler) rotate(ev Event, t Target) bool {
	if !t.Visible() {
		return false
	}
	t.RotateY(ev.PositionChange.X * h.cfg.RotationFactor)
	t.RotateX(ev.PositionChange.Y * h.cfg.RotationFactor)
	return true
}

// scale grows the target relative to the spread the pinch started with.
func (h *Handler) scale(ev Event, t Target) bool {
	if !t.Visible() {
		return false
	}
	if !ev.HasSpreadChange || !ev.HasStartSpread || ev.StartSpread == 0 {
		h.log.Debug("pinch ignored: no start spread",
			zap.Bool("has_spread_change", ev.HasSpreadChange),
			zap.Float64("start_spread", ev.StartSpread),
		)
		return false
	}

	factor := t.ScaleFactor() * (1 + ev.SpreadChange/ev.StartSpread)
	if gomath.IsNaN(factor) || gomath.IsInf(factor, 0) {
		h.log.Warn("pinch ignored: non-finite scale factor", zap.Float64("factor", factor))
		return false
	}
	factor = clamp(factor, h.cfg.MinScale, h.cfg.MaxScale)

	t.SetScaleFactor(factor)
	t.SetScale(t.InitialScale().Scale(factor))
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
