package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions int
	Ticks          int
	Moved          int
	Stayed         int
	Blocked        int
	Contested      int
	Collected      int
	ContestedCells map[[2]int]int // target cell → number of contested decisions
	PerAgent       map[string]int // agent → treasures collected
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		ContestedCells: make(map[[2]int]int),
		PerAgent:       make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Moves)
	for _, m := range st.Moves {
		if m.Tick > summary.Ticks {
			summary.Ticks = m.Tick
		}
		switch m.Outcome {
		case OutcomeMoved:
			summary.Moved++
		case OutcomeStayed:
			summary.Stayed++
		case OutcomeBlocked:
			summary.Blocked++
		case OutcomeContested:
			summary.Contested++
			summary.ContestedCells[[2]int{m.TargetX, m.TargetY}]++
		}
		if m.Collected > 0 {
			summary.Collected += m.Collected
			summary.PerAgent[m.Agent] += m.Collected
		}
	}
	return summary
}
