// Defines the Agent struct that models one adventurer in the simulation.
// Tracks position, heading, instruction cursor and collected treasures.

package sim

import "fmt"

// AgentState represents the lifecycle state of an agent.
type AgentState string

const (
	StateActive AgentState = "active"
	StateDone   AgentState = "done"
)

// Proposal is an agent's candidate next state for the tick being resolved.
type Proposal struct {
	Target  Position
	Heading Orientation
	Valid   bool // false when the agent takes no part in this tick's conflict checks
}

type Agent struct {
	Name         string
	Position     Position
	Orientation  Orientation
	Instructions []Directive // immutable once loaded

	Cursor             int // index of the next directive; len(Instructions) means done
	TreasuresCollected int

	proposal Proposal // tick-scoped, rewritten by every propose phase
}

// NewAgent creates an active agent at pos facing o. The instruction string
// uses the map-file letters (see ParseInstructions).
func NewAgent(name string, pos Position, o Orientation, instructions string) *Agent {
	return &Agent{
		Name:         name,
		Position:     pos,
		Orientation:  o,
		Instructions: ParseInstructions(instructions),
	}
}

// State derives Active/Done from the cursor. The transition is monotonic.
func (a *Agent) State() AgentState {
	if a.Cursor >= len(a.Instructions) {
		return StateDone
	}
	return StateActive
}

func (a *Agent) Active() bool { return a.State() == StateActive }

// Current returns the directive at the cursor; ok is false once done.
func (a *Agent) Current() (d Directive, ok bool) {
	if !a.Active() {
		return DirectiveNoop, false
	}
	return a.Instructions[a.Cursor], true
}

// Proposal returns the candidate state computed in the last propose phase.
func (a *Agent) Proposal() Proposal { return a.proposal }

// propose computes the next state for the current directive without touching
// any shared state. Forward moves are clamped to the grid edge.
func (a *Agent) propose(g *GridMap) Proposal {
	d, ok := a.Current()
	if !ok {
		return Proposal{}
	}
	p := Proposal{Target: a.Position, Heading: a.Orientation, Valid: true}
	switch d {
	case DirectiveForward:
		dx, dy := a.Orientation.Delta()
		p.Target = g.Clamp(Position{X: a.Position.X + dx, Y: a.Position.Y + dy})
	case DirectiveTurnRight:
		p.Heading = a.Orientation.Right()
	case DirectiveTurnLeft:
		p.Heading = a.Orientation.Left()
	}
	return p
}

// holdPosition makes a finished agent claim its own cell for the tick.
func (a *Agent) holdPosition() Proposal {
	return Proposal{Target: a.Position, Heading: a.Orientation, Valid: true}
}

// Snapshot captures the externally visible end state of the agent.
func (a *Agent) Snapshot() AgentSnapshot {
	return AgentSnapshot{
		Name:               a.Name,
		Position:           a.Position,
		Orientation:        a.Orientation,
		TreasuresCollected: a.TreasuresCollected,
	}
}

// This method returns a human-readable string representation of an Agent.
func (a Agent) String() string {
	return fmt.Sprintf("Agent: (Name: %s, Position: %s, Orientation: %s, Cursor: %d/%d, Treasures: %d)",
		a.Name, a.Position, a.Orientation, a.Cursor, len(a.Instructions), a.TreasuresCollected)
}

// AgentSnapshot is the final (name, x, y, orientation, treasures) record handed
// to serializers.
type AgentSnapshot struct {
	Name               string      `json:"name"`
	Position           Position    `json:"position"`
	Orientation        Orientation `json:"orientation"`
	TreasuresCollected int         `json:"treasures_collected"`
}
