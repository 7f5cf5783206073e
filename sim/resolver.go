package sim

import (
	"github.com/treasuremap/treasure-sim/sim/trace"
)

// TickResult counts what one tick did.
type TickResult struct {
	Tick      int
	Advanced  int // agents whose cursor moved forward
	Moved     int // agents that entered a new cell
	Blocked   int // forward moves stopped by a mountain
	Contested int // agents that must retry their directive
	Collected int // treasures picked up
}

// Progressed reports whether any agent consumed a directive. A tick without
// progress leaves the whole state unchanged.
func (r TickResult) Progressed() bool { return r.Advanced > 0 }

// MoveResolver computes one tick at a time in two phases: every agent
// proposes from pre-tick state, then proposals are committed in agent order.
// Splitting the phases lets each agent see every other agent's intended
// destination for the same tick.
type MoveResolver struct {
	grid           *GridMap
	agents         []*Agent
	policy         ConflictPolicy
	finishedOccupy bool
	trace          *trace.SimulationTrace
	tick           int

	// targets indexes this tick's proposals by target cell, in agent order.
	targets map[Position][]*Agent
}

// NewMoveResolver creates a resolver over grid and agents. The agent slice
// order is the commit order. A nil policy means BlockAll.
func NewMoveResolver(grid *GridMap, agents []*Agent, policy ConflictPolicy, finishedOccupy bool, st *trace.SimulationTrace) *MoveResolver {
	if policy == nil {
		policy = BlockAll{}
	}
	return &MoveResolver{
		grid:           grid,
		agents:         agents,
		policy:         policy,
		finishedOccupy: finishedOccupy,
		trace:          st,
		targets:        make(map[Position][]*Agent, len(agents)),
	}
}

// Tick returns the number of ticks resolved so far.
func (r *MoveResolver) Tick() int { return r.tick }

// Step resolves one full tick.
func (r *MoveResolver) Step() TickResult {
	r.tick++
	r.propose()
	return r.commit()
}

// propose computes every agent's proposal and rebuilds the target index.
// Nothing shared is mutated here.
func (r *MoveResolver) propose() {
	clear(r.targets)
	for _, a := range r.agents {
		switch {
		case a.Active():
			a.proposal = a.propose(r.grid)
		case r.finishedOccupy:
			a.proposal = a.holdPosition()
		default:
			a.proposal = Proposal{}
		}
		if a.proposal.Valid {
			r.targets[a.proposal.Target] = append(r.targets[a.proposal.Target], a)
		}
	}
}

func (r *MoveResolver) commit() TickResult {
	res := TickResult{Tick: r.tick}
	for _, a := range r.agents {
		d, ok := a.Current()
		if !ok {
			continue
		}
		p := a.proposal
		from := a.Position

		if allowed, reason := r.policy.Allow(a, r.targets[p.Target]); !allowed {
			res.Contested++
			r.record(a, d, from, trace.OutcomeContested, reason, 0)
			continue
		}

		outcome := trace.OutcomeStayed
		collected := 0
		switch {
		case !r.grid.IsPassable(p.Target.X, p.Target.Y):
			outcome = trace.OutcomeBlocked
			res.Blocked++
		case p.Target != a.Position:
			a.Position = p.Target
			collected = r.grid.CollectTreasure(p.Target.X, p.Target.Y)
			a.TreasuresCollected += collected
			outcome = trace.OutcomeMoved
			res.Moved++
			res.Collected += collected
		}
		a.Orientation = p.Heading
		a.Cursor++
		res.Advanced++
		r.record(a, d, from, outcome, "", collected)
	}
	return res
}

func (r *MoveResolver) record(a *Agent, d Directive, from Position, outcome trace.Outcome, reason string, collected int) {
	if !r.trace.Enabled() {
		return
	}
	r.trace.RecordMove(trace.MoveRecord{
		Tick:      r.tick,
		Agent:     a.Name,
		Directive: d.String(),
		FromX:     from.X,
		FromY:     from.Y,
		TargetX:   a.proposal.Target.X,
		TargetY:   a.proposal.Target.Y,
		Heading:   a.proposal.Heading.Letter(),
		Outcome:   outcome,
		Reason:    reason,
		Collected: collected,
	})
}
