package trace

// Outcome is what the commit phase did with one agent's proposal.
type Outcome string

const (
	// OutcomeMoved: the agent entered a new cell.
	OutcomeMoved Outcome = "moved"
	// OutcomeStayed: turn, no-op or edge-clamped move; the cursor advanced.
	OutcomeStayed Outcome = "stayed"
	// OutcomeBlocked: the target was a mountain; the cursor advanced.
	OutcomeBlocked Outcome = "blocked"
	// OutcomeContested: another agent targeted the same cell; nothing changed.
	OutcomeContested Outcome = "contested"
)

// MoveRecord captures a single agent's commit decision for one tick.
type MoveRecord struct {
	Tick      int     `json:"tick"`
	Agent     string  `json:"agent"`
	Directive string  `json:"directive"`
	FromX     int     `json:"from_x"`
	FromY     int     `json:"from_y"`
	TargetX   int     `json:"target_x"`
	TargetY   int     `json:"target_y"`
	Heading   string  `json:"heading"`
	Outcome   Outcome `json:"outcome"`
	Reason    string  `json:"reason,omitempty"`
	Collected int     `json:"collected,omitempty"`
}
