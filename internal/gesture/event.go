package gesture

import "github.com/Faultbox/midgard-gesture/pkg/math"

// Phase is the lifecycle stage a gesture event reports.
type Phase uint8

const (
	PhaseStart Phase = iota // first frame with a new touch count
	PhaseMove               // following frame with the same touch count
	PhaseEnd                // touches lifted or touch count changed
)

// String returns the suffix used in event names.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event names consumed by Handler.
const (
	OneFingerMove = "onefingermove"
	TwoFingerMove = "twofingermove"
)

var countNames = [...]string{"one", "two", "three", "many"}

// Prefix returns the word form of a touch count: one, two, three, or many
// for four and more. Counts below one have no name.
func Prefix(count int) string {
	if count < 1 {
		return ""
	}
	return countNames[min(count, len(countNames))-1]
}

// EventName builds names such as "twofingermove".
func EventName(count int, phase Phase) string {
	return Prefix(count) + "finger" + phase.String()
}

// Event is emitted by Detector for every gesture transition.
//
// The embedded TouchSample holds the state of the gesture after this frame,
// including the Start* fields stamped when it began. PositionChange and
// SpreadChange are only filled for PhaseMove.
type Event struct {
	Name  string
	Phase Phase
	TouchSample

	PositionChange  math.Vec2
	SpreadChange    float64
	HasSpreadChange bool
}
