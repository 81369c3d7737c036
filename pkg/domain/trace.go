package domain

import "time"

// Reason records why the tracer stopped walking.
type Reason string

const (
	ReasonStepBudgetExhausted Reason = "step_budget_exhausted" // maxSteps iterations ran
	ReasonNonFiniteState      Reason = "non_finite_state"      // position or value became non-finite, point dropped
	ReasonFlatGradient        Reason = "flat_gradient"         // gradient below floor or non-finite, point kept
)

// Status is the outcome of a finished trace.
type Status string

const (
	StatusSuccess          Status = "success"
	StatusInsufficientPath Status = "insufficient_path"
)

// Mode selects the direction of the walk.
type Mode string

const (
	ModeDescend Mode = "descend"
	ModeAscend  Mode = "ascend"
)

// ModeOf maps the ascend toggle to a Mode.
func ModeOf(ascend bool) Mode {
	if ascend {
		return ModeAscend
	}
	return ModeDescend
}

// Sign is +1 for ascent and -1 for descent.
func (m Mode) Sign() float64 {
	if m == ModeAscend {
		return 1
	}
	return -1
}

// Trace is the result of one gradient walk. Waypoints[0] is the start point.
// A Trace is immutable once returned by the tracer.
type Trace struct {
	ID         string     `json:"id,omitempty"`
	Expression string     `json:"expression,omitempty"`
	Start      Point      `json:"start"`
	Mode       Mode       `json:"mode"`
	Reason     Reason     `json:"reason"`
	Steps      int        `json:"steps"`
	Waypoints  []Waypoint `json:"waypoints"`
	CreatedAt  time.Time  `json:"created_at,omitempty"`
}

// Status derives the outcome: fewer than two points is a failure, not a degenerate success.
func (t *Trace) Status() Status {
	if len(t.Waypoints) <= 1 {
		return StatusInsufficientPath
	}
	return StatusSuccess
}

// Err returns ErrPathTooShort for insufficient paths.
func (t *Trace) Err() error {
	if t.Status() == StatusInsufficientPath {
		return ErrPathTooShort
	}
	return nil
}

// Last returns the final waypoint. It panics on an empty trace.
func (t *Trace) Last() Waypoint {
	return t.Waypoints[len(t.Waypoints)-1]
}
