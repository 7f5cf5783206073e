package sim

import "fmt"

// ConflictPolicy decides whether an agent may commit its proposal when other
// agents proposed the same target cell in the same tick.
// contenders holds every agent whose proposal targets the cell, in agent
// order, and always includes a itself.
type ConflictPolicy interface {
	Allow(a *Agent, contenders []*Agent) (allowed bool, reason string)
}

// BlockAll rejects every contender of a contested cell; all of them retry the
// same directive next tick.
type BlockAll struct{}

func (BlockAll) Allow(_ *Agent, contenders []*Agent) (bool, string) {
	if len(contenders) > 1 {
		return false, "contested"
	}
	return true, ""
}

// FirstWins lets exactly one contender through. Agents already standing on
// the cell win over agents moving into it; ties go to the earliest agent in
// commit order.
type FirstWins struct{}

func (FirstWins) Allow(a *Agent, contenders []*Agent) (bool, string) {
	if len(contenders) <= 1 {
		return true, ""
	}
	winner := contenders[0]
	for _, c := range contenders {
		if c.Position == c.proposal.Target {
			winner = c
			break
		}
	}
	if winner != a {
		return false, fmt.Sprintf("yields to %s", winner.Name)
	}
	return true, ""
}

// NewConflictPolicy creates a conflict policy by name.
// Valid names are defined in ValidConflictPolicies (config.go).
// An empty string defaults to BlockAll.
// Panics on unrecognized names.
func NewConflictPolicy(name string) ConflictPolicy {
	if !ValidConflictPolicies[name] {
		panic(fmt.Sprintf("unknown conflict policy %q", name))
	}
	switch name {
	case "", PolicyBlockAll:
		return BlockAll{}
	case PolicyFirstWins:
		return FirstWins{}
	default:
		panic(fmt.Sprintf("unhandled conflict policy %q", name))
	}
}
