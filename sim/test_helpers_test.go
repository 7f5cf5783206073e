package sim

import (
	"testing"
)

// newTestSimulator builds a simulator from scn and fails the test on any
// construction error.
func newTestSimulator(t *testing.T, scn *Scenario, cfg Config) *Simulator {
	t.Helper()
	s, err := NewSimulator(scn, cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

// laraScenario is the reference map: one adventurer walking a 3x4 map with
// two mountains and two treasure cells.
func laraScenario() *Scenario {
	return &Scenario{
		Width:     3,
		Height:    4,
		Mountains: []Position{{1, 0}, {2, 1}},
		Treasures: []TreasureSpec{{X: 0, Y: 3, Count: 2}, {X: 1, Y: 3, Count: 3}},
		Agents: []AgentSpec{
			{Name: "Lara", X: 1, Y: 1, Orientation: South, Instructions: "AADADAGGA"},
		},
	}
}

// headOnScenario places two agents facing each other with (3,3) between them.
func headOnScenario(instructions string) *Scenario {
	return &Scenario{
		Width:  6,
		Height: 6,
		Agents: []AgentSpec{
			{Name: "west", X: 2, Y: 3, Orientation: East, Instructions: instructions},
			{Name: "east", X: 4, Y: 3, Orientation: West, Instructions: instructions},
		},
	}
}

func agentByName(t *testing.T, s *Simulator, name string) *Agent {
	t.Helper()
	for _, a := range s.Agents {
		if a.Name == name {
			return a
		}
	}
	t.Fatalf("no agent named %q", name)
	return nil
}
