package sim

import (
	"errors"
	"fmt"
	"strings"
)

// Construction errors. All of them are precondition failures detected before
// the first tick; the simulation itself has no retryable runtime errors.
var (
	ErrInvalidDimensions  = errors.New("grid dimensions must be positive")
	ErrOutOfBounds        = errors.New("coordinate out of bounds")
	ErrInvalidTreasure    = errors.New("treasure count must be at least 1")
	ErrOverlappingFeature = errors.New("mountain and treasure share a cell")
	ErrDuplicateAgent     = errors.New("duplicate agent name")
	ErrInvalidAgent       = errors.New("invalid agent")
	ErrBlockedStart       = errors.New("agent starts on a mountain")
	ErrOccupiedStart      = errors.New("agents share a starting cell")
)

// ErrStalled is returned by Simulator.Run when agents can make no further
// progress or the tick budget is exhausted.
var ErrStalled = errors.New("simulation stalled")

// OutOfBoundsError reports a coordinate outside [0,Width)×[0,Height).
type OutOfBoundsError struct {
	What   string // "mountain", "treasure", "agent Lara", ...
	Pos    Position
	Width  int
	Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s at %s outside %dx%d grid", e.What, e.Pos, e.Width, e.Height)
}

func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }

// StalledError describes why a run stopped before every agent was done.
type StalledError struct {
	Tick    int
	Blocked []string // names of agents still active when the run stopped
	Budget  bool     // true when the tick budget ran out rather than a no-progress tick
}

func (e *StalledError) Error() string {
	reason := "no agent could advance"
	if e.Budget {
		reason = "tick budget exhausted"
	}
	return fmt.Sprintf("%s at tick %d (%s); active agents: %s",
		ErrStalled, e.Tick, reason, strings.Join(e.Blocked, ", "))
}

func (e *StalledError) Unwrap() error { return ErrStalled }
