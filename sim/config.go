package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Conflict policy names.
const (
	PolicyBlockAll  = "block-all"
	PolicyFirstWins = "first-wins"
)

// DefaultMaxTicks bounds a run when Config.MaxTicks is zero.
const DefaultMaxTicks = 100_000

// ValidConflictPolicies is the set of recognized conflict policy names.
// Shared by Validate() and NewConflictPolicy() to avoid duplication.
var ValidConflictPolicies = map[string]bool{"": true, PolicyBlockAll: true, PolicyFirstWins: true}

// Config holds run policy, loadable from a YAML file.
type Config struct {
	// ConflictPolicy selects how contested cells are arbitrated ("block-all" by default).
	ConflictPolicy string `yaml:"conflict_policy"`
	// MaxTicks caps the number of ticks; 0 means DefaultMaxTicks.
	MaxTicks int `yaml:"max_ticks"`
	// FinishedAgentsOccupy keeps done agents claiming their cell in conflict checks.
	FinishedAgentsOccupy bool `yaml:"finished_agents_occupy"`
	// Trace enables per-tick decision recording.
	Trace bool `yaml:"trace"`
}

// DefaultConfig returns the configuration used when no policy file is given.
func DefaultConfig() Config {
	return Config{ConflictPolicy: PolicyBlockAll, MaxTicks: DefaultMaxTicks}
}

// LoadConfig reads and parses a YAML run configuration file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run config: %w", err)
	}
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing run config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the policy name and the tick budget.
func (c Config) Validate() error {
	if !ValidConflictPolicies[c.ConflictPolicy] {
		return fmt.Errorf("unknown conflict policy %q; valid: %s, %s", c.ConflictPolicy, PolicyBlockAll, PolicyFirstWins)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("max_ticks must be non-negative, got %d", c.MaxTicks)
	}
	return nil
}

func (c Config) tickBudget() int {
	if c.MaxTicks == 0 {
		return DefaultMaxTicks
	}
	return c.MaxTicks
}
