// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/treasuremap/treasure-sim/sim/trace"
)

// Simulator is the runner: it owns the grid and the agents and drives the
// MoveResolver until every agent is done.
type Simulator struct {
	Grid   *GridMap
	Agents []*Agent
	Config Config
	// Trace is nil unless Config.Trace is set.
	Trace *trace.SimulationTrace
	// Clock is the number of ticks executed so far.
	Clock int

	resolver         *MoveResolver
	initialTreasures int
}

// Result is the end state handed to serializers.
type Result struct {
	Ticks     int
	Grid      *GridMap
	Agents    []AgentSnapshot
	Collected int // treasures collected across all agents
}

// NewSimulator validates cfg, builds the grid and the agents from scn, and
// rejects any coordinate outside the grid.
func NewSimulator(scn *Scenario, cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, err := scn.BuildGrid()
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}
	agents, err := scn.BuildAgents(grid)
	if err != nil {
		return nil, fmt.Errorf("building agents: %w", err)
	}

	s := &Simulator{
		Grid:             grid,
		Agents:           agents,
		Config:           cfg,
		initialTreasures: grid.TotalTreasures(),
	}
	if cfg.Trace {
		s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelMoves})
	}
	s.resolver = NewMoveResolver(grid, agents, NewConflictPolicy(cfg.ConflictPolicy), cfg.FinishedAgentsOccupy, s.Trace)
	return s, nil
}

// Done is the termination predicate: no agent has instructions left.
func (s *Simulator) Done() bool {
	for _, a := range s.Agents {
		if a.Active() {
			return false
		}
	}
	return true
}

// Step runs one tick.
func (s *Simulator) Step() TickResult {
	res := s.resolver.Step()
	s.Clock = s.resolver.Tick()
	logrus.Debugf("[tick %07d] advanced=%d moved=%d blocked=%d contested=%d collected=%d",
		s.Clock, res.Advanced, res.Moved, res.Blocked, res.Contested, res.Collected)
	return res
}

// Run ticks until every agent is done. When a tick makes no progress, or the
// tick budget runs out first, Run stops and returns the state reached so far
// together with a *StalledError.
func (s *Simulator) Run() (*Result, error) {
	budget := s.Config.tickBudget()
	for !s.Done() {
		if s.Clock >= budget {
			return s.stalled(true)
		}
		if res := s.Step(); !res.Progressed() {
			return s.stalled(false)
		}
	}
	logrus.Infof("[tick %07d] Simulation ended", s.Clock)
	return s.Result(), nil
}

func (s *Simulator) stalled(budget bool) (*Result, error) {
	err := &StalledError{Tick: s.Clock, Budget: budget}
	for _, a := range s.Agents {
		if a.Active() {
			err.Blocked = append(err.Blocked, a.Name)
		}
	}
	logrus.Warnf("[tick %07d] %v", s.Clock, err)
	return s.Result(), err
}

// Result snapshots the current state.
func (s *Simulator) Result() *Result {
	r := &Result{
		Ticks:  s.Clock,
		Grid:   s.Grid,
		Agents: make([]AgentSnapshot, len(s.Agents)),
	}
	for i, a := range s.Agents {
		r.Agents[i] = a.Snapshot()
		r.Collected += a.TreasuresCollected
	}
	return r
}

// InitialTreasures is the treasure count on the map before the first tick.
func (s *Simulator) InitialTreasures() int { return s.initialTreasures }
