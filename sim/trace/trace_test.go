package trace

import (
	"testing"
)

func TestSimulationTrace_RecordMove_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for moves
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelMoves})

	// WHEN a move record is recorded
	st.RecordMove(MoveRecord{
		Tick:    1,
		Agent:   "Lara",
		FromX:   1,
		FromY:   1,
		TargetX: 1,
		TargetY: 2,
		Outcome: OutcomeMoved,
	})

	// THEN the trace contains one move record with correct data
	if len(st.Moves) != 1 {
		t.Fatalf("expected 1 move record, got %d", len(st.Moves))
	}
	m := st.Moves[0]
	if m.Agent != "Lara" || m.Tick != 1 || m.Outcome != OutcomeMoved {
		t.Errorf("unexpected record %+v", m)
	}
}

func TestSimulationTrace_Enabled_DependsOnLevel(t *testing.T) {
	var nilTrace *SimulationTrace
	if nilTrace.Enabled() {
		t.Error("nil trace must be disabled")
	}
	if NewSimulationTrace(TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("level none must be disabled")
	}
	if !NewSimulationTrace(TraceConfig{Level: TraceLevelMoves}).Enabled() {
		t.Error("level moves must be enabled")
	}
}

func TestSimulationTrace_ForAgent_FiltersInOrder(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelMoves})
	st.RecordMove(MoveRecord{Tick: 1, Agent: "a"})
	st.RecordMove(MoveRecord{Tick: 1, Agent: "b"})
	st.RecordMove(MoveRecord{Tick: 2, Agent: "a"})

	got := st.ForAgent("a")
	if len(got) != 2 || got[0].Tick != 1 || got[1].Tick != 2 {
		t.Errorf("unexpected records for a: %+v", got)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	for _, lvl := range []string{"", "none", "moves"} {
		if !IsValidTraceLevel(lvl) {
			t.Errorf("expected %q to be valid", lvl)
		}
	}
	if IsValidTraceLevel("verbose") {
		t.Error("expected verbose to be invalid")
	}
}
