package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator_Run_SingleAgentCollectsTreasure(t *testing.T) {
	// GIVEN a 4x3 map with a mountain at (1,0) and one treasure at (0,2)
	scn := &Scenario{
		Width: 4, Height: 3,
		Mountains: []Position{{1, 0}},
		Treasures: []TreasureSpec{{X: 0, Y: 2, Count: 1}},
		Agents:    []AgentSpec{{Name: "A1", X: 0, Y: 0, Orientation: South, Instructions: "AA"}},
	}
	s := newTestSimulator(t, scn, DefaultConfig())

	// WHEN the first tick runs
	s.Step()

	// THEN A1 is at (0,1)
	assert.Equal(t, Position{0, 1}, s.Agents[0].Position)

	// WHEN the run completes
	res, err := s.Run()

	// THEN A1 collected the treasure and the cell is empty
	require.NoError(t, err)
	assert.Equal(t, 2, res.Ticks)
	assert.Equal(t, AgentSnapshot{Name: "A1", Position: Position{0, 2}, Orientation: South, TreasuresCollected: 1}, res.Agents[0])
	c, err := res.Grid.CellAt(0, 2)
	require.NoError(t, err)
	assert.Equal(t, CellEmpty, c.Kind)
}

func TestSimulator_Run_ReferenceMap(t *testing.T) {
	s := newTestSimulator(t, laraScenario(), DefaultConfig())

	res, err := s.Run()

	require.NoError(t, err)
	assert.Equal(t, 9, res.Ticks)
	assert.Equal(t, AgentSnapshot{Name: "Lara", Position: Position{0, 3}, Orientation: South, TreasuresCollected: 3}, res.Agents[0])
	assert.Equal(t, []Feature{
		{Position: Position{1, 0}, Cell: Cell{Kind: CellMountain}},
		{Position: Position{2, 1}, Cell: Cell{Kind: CellMountain}},
		{Position: Position{1, 3}, Cell: Cell{Kind: CellTreasure, Treasures: 2}},
	}, res.Grid.Features())
}

func TestSimulator_Run_HeadOnDeadlock_ReportsStalled(t *testing.T) {
	// GIVEN two agents permanently contesting (3,3) under block-all
	s := newTestSimulator(t, headOnScenario("A"), DefaultConfig())

	// WHEN run
	res, err := s.Run()

	// THEN the run stops after the first tick without progress
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStalled))
	var stalled *StalledError
	require.ErrorAs(t, err, &stalled)
	assert.Equal(t, 1, stalled.Tick)
	assert.False(t, stalled.Budget)
	assert.Equal(t, []string{"west", "east"}, stalled.Blocked)

	// AND the partial state is still returned
	require.NotNil(t, res)
	assert.Equal(t, Position{2, 3}, res.Agents[0].Position)
	assert.Equal(t, Position{4, 3}, res.Agents[1].Position)
}

func TestSimulator_Run_TickBudgetExhausted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTicks = 1
	s := newTestSimulator(t, laraScenario(), cfg)

	_, err := s.Run()

	var stalled *StalledError
	require.ErrorAs(t, err, &stalled)
	assert.True(t, stalled.Budget)
	assert.Equal(t, 1, stalled.Tick)
	assert.Contains(t, err.Error(), "tick budget exhausted")
}

func TestSimulator_Run_NoActiveAgents_ZeroTicks(t *testing.T) {
	scn := &Scenario{
		Width: 2, Height: 2,
		Agents: []AgentSpec{{Name: "idle", X: 0, Y: 0, Orientation: North}},
	}
	s := newTestSimulator(t, scn, DefaultConfig())

	res, err := s.Run()

	require.NoError(t, err)
	assert.Equal(t, 0, res.Ticks)
	assert.True(t, s.Done())
}

func TestSimulator_Invariants_HoldEveryTick(t *testing.T) {
	// GIVEN a crowded map with mountains, treasures and several agents
	scn := &Scenario{
		Width: 5, Height: 5,
		Mountains: []Position{{2, 2}, {0, 4}, {4, 0}},
		Treasures: []TreasureSpec{{X: 1, Y: 1, Count: 2}, {X: 3, Y: 3, Count: 1}, {X: 2, Y: 4, Count: 3}},
		Agents: []AgentSpec{
			{Name: "a", X: 0, Y: 0, Orientation: East, Instructions: "AADAAGAAADAA"},
			{Name: "b", X: 4, Y: 4, Orientation: North, Instructions: "AAGAADAAAGGA"},
			{Name: "c", X: 2, Y: 0, Orientation: South, Instructions: "AAAAGAADDAAA"},
			{Name: "d", X: 0, Y: 2, Orientation: West, Instructions: "ADADAGAGAAAA"},
		},
	}
	cfg := DefaultConfig()
	cfg.ConflictPolicy = PolicyFirstWins
	s := newTestSimulator(t, scn, cfg)
	initial := s.InitialTreasures()
	require.Equal(t, 6, initial)

	prevCursor := make([]int, len(s.Agents))
	for !s.Done() && s.Clock < 200 {
		res := s.Step()

		collected := 0
		for i, a := range s.Agents {
			// THEN every agent stays inside the grid
			assert.True(t, s.Grid.InBounds(a.Position), "tick %d: %s out of bounds at %s", res.Tick, a.Name, a.Position)
			// AND never stands on a mountain
			assert.True(t, s.Grid.IsPassable(a.Position.X, a.Position.Y), "tick %d: %s on mountain", res.Tick, a.Name)
			// AND its cursor advances by at most one
			step := a.Cursor - prevCursor[i]
			assert.True(t, step == 0 || step == 1, "tick %d: %s cursor jumped by %d", res.Tick, a.Name, step)
			prevCursor[i] = a.Cursor
			collected += a.TreasuresCollected
		}
		// AND treasure is conserved
		assert.Equal(t, initial, collected+s.Grid.TotalTreasures(), "tick %d", res.Tick)
		if !res.Progressed() {
			break
		}
	}
}

func TestNewSimulator_ConstructionErrors(t *testing.T) {
	base := func() *Scenario {
		return &Scenario{
			Width: 3, Height: 3,
			Agents: []AgentSpec{{Name: "a", X: 0, Y: 0, Orientation: North, Instructions: "A"}},
		}
	}
	tests := []struct {
		name   string
		mutate func(*Scenario)
		want   error
	}{
		{"zero width", func(s *Scenario) { s.Width = 0 }, ErrInvalidDimensions},
		{"mountain outside", func(s *Scenario) { s.Mountains = []Position{{3, 0}} }, ErrOutOfBounds},
		{"treasure outside", func(s *Scenario) { s.Treasures = []TreasureSpec{{X: 0, Y: -1, Count: 1}} }, ErrOutOfBounds},
		{"agent outside", func(s *Scenario) { s.Agents[0].Y = 3 }, ErrOutOfBounds},
		{"zero treasure", func(s *Scenario) { s.Treasures = []TreasureSpec{{X: 1, Y: 1, Count: 0}} }, ErrInvalidTreasure},
		{"mountain on treasure", func(s *Scenario) {
			s.Treasures = []TreasureSpec{{X: 1, Y: 1, Count: 1}}
			s.Mountains = []Position{{1, 1}}
		}, ErrOverlappingFeature},
		{"duplicate name", func(s *Scenario) { s.Agents = append(s.Agents, AgentSpec{Name: "a", X: 1, Y: 1, Orientation: North}) }, ErrDuplicateAgent},
		{"unnamed agent", func(s *Scenario) { s.Agents[0].Name = "" }, ErrInvalidAgent},
		{"no orientation", func(s *Scenario) { s.Agents[0].Orientation = 0 }, ErrInvalidAgent},
		{"start on mountain", func(s *Scenario) { s.Mountains = []Position{{0, 0}} }, ErrBlockedStart},
		{"shared start", func(s *Scenario) { s.Agents = append(s.Agents, AgentSpec{Name: "b", X: 0, Y: 0, Orientation: North}) }, ErrOccupiedStart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scn := base()
			tt.mutate(scn)
			_, err := NewSimulator(scn, DefaultConfig())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewSimulator_InvalidConfig_Rejected(t *testing.T) {
	_, err := NewSimulator(laraScenario(), Config{ConflictPolicy: "random"})
	assert.Error(t, err)
}

func TestNewSimulator_OutOfBoundsError_NamesAgent(t *testing.T) {
	scn := laraScenario()
	scn.Agents[0].X = 7
	_, err := NewSimulator(scn, DefaultConfig())

	var oob *OutOfBoundsError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, "agent Lara", oob.What)
	assert.Equal(t, Position{7, 1}, oob.Pos)
}

func TestSimulator_Deterministic_SameInputSameResult(t *testing.T) {
	run := func() *Result {
		cfg := DefaultConfig()
		cfg.ConflictPolicy = PolicyFirstWins
		s := newTestSimulator(t, headOnScenario("AADGA"), cfg)
		res, err := s.Run()
		require.NoError(t, err)
		return res
	}
	r1, r2 := run(), run()
	assert.Equal(t, r1.Ticks, r2.Ticks)
	assert.Equal(t, r1.Agents, r2.Agents)
}
