package sim

import "fmt"

// Scenario is the fully parsed input handed to the core by a format adapter
// (see sim/mapfile and sim/scenario).
type Scenario struct {
	Width     int            `yaml:"width"`
	Height    int            `yaml:"height"`
	Mountains []Position     `yaml:"mountains,omitempty"`
	Treasures []TreasureSpec `yaml:"treasures,omitempty"`
	Agents    []AgentSpec    `yaml:"agents,omitempty"`
}

// TreasureSpec places Count treasures on one cell.
type TreasureSpec struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Count int `yaml:"count"`
}

// AgentSpec describes one adventurer as read from input.
type AgentSpec struct {
	Name         string      `yaml:"name"`
	X            int         `yaml:"x"`
	Y            int         `yaml:"y"`
	Orientation  Orientation `yaml:"orientation"`
	Instructions string      `yaml:"instructions"`
}

// BuildGrid constructs the GridMap, rejecting any feature outside the grid.
func (s *Scenario) BuildGrid() (*GridMap, error) {
	g, err := NewGridMap(s.Width, s.Height)
	if err != nil {
		return nil, err
	}
	for _, m := range s.Mountains {
		if err := g.PlaceMountain(m.X, m.Y); err != nil {
			return nil, err
		}
	}
	for _, t := range s.Treasures {
		if err := g.PlaceTreasure(t.X, t.Y, t.Count); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// BuildAgents constructs the agents in input order and checks them against g.
// Agent order is the commit order of every tick.
func (s *Scenario) BuildAgents(g *GridMap) ([]*Agent, error) {
	agents := make([]*Agent, 0, len(s.Agents))
	names := make(map[string]bool, len(s.Agents))
	occupied := make(map[Position]string, len(s.Agents))
	for i, spec := range s.Agents {
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: agent[%d] has no name", ErrInvalidAgent, i)
		}
		if names[spec.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAgent, spec.Name)
		}
		names[spec.Name] = true
		if !spec.Orientation.Valid() {
			return nil, fmt.Errorf("%w: %q has invalid orientation %d", ErrInvalidAgent, spec.Name, int(spec.Orientation))
		}
		pos := Position{X: spec.X, Y: spec.Y}
		if err := g.checkBounds("agent "+spec.Name, pos); err != nil {
			return nil, err
		}
		if !g.IsPassable(pos.X, pos.Y) {
			return nil, fmt.Errorf("%w: %q at %s", ErrBlockedStart, spec.Name, pos)
		}
		if other, ok := occupied[pos]; ok {
			return nil, fmt.Errorf("%w: %q and %q at %s", ErrOccupiedStart, other, spec.Name, pos)
		}
		occupied[pos] = spec.Name
		agents = append(agents, NewAgent(spec.Name, pos, spec.Orientation, spec.Instructions))
	}
	return agents, nil
}

// InitialTreasures is the sum of all treasure counts in the scenario.
func (s *Scenario) InitialTreasures() int {
	n := 0
	for _, t := range s.Treasures {
		n += t.Count
	}
	return n
}
