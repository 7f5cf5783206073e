// Package trace provides per-tick decision recording for move resolution.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelMoves captures one record per active agent per tick.
	TraceLevelMoves TraceLevel = "moves"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:  true,
	TraceLevelMoves: true,
	"":              true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects move records during a run.
type SimulationTrace struct {
	Config TraceConfig
	Moves  []MoveRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Moves:  make([]MoveRecord, 0),
	}
}

// Enabled reports whether records should be collected at all.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelMoves
}

// RecordMove appends a move decision record.
func (st *SimulationTrace) RecordMove(record MoveRecord) {
	st.Moves = append(st.Moves, record)
}

// ForAgent returns the records of one agent in tick order.
func (st *SimulationTrace) ForAgent(name string) []MoveRecord {
	var out []MoveRecord
	for _, m := range st.Moves {
		if m.Agent == name {
			out = append(out, m)
		}
	}
	return out
}
