package mapfile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treasuremap/treasure-sim/sim"
	"github.com/treasuremap/treasure-sim/sim/internal/testutil"
)

// TestGolden_EndToEnd parses each golden input, runs it, and compares the
// written output byte for byte.
func TestGolden_EndToEnd(t *testing.T) {
	dataset := testutil.LoadGoldenDataset(t)

	for _, tc := range dataset.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			scn, err := Parse(strings.NewReader(tc.Input))
			require.NoError(t, err)

			cfg := sim.DefaultConfig()
			cfg.ConflictPolicy = tc.ConflictPolicy
			s, err := sim.NewSimulator(scn, cfg)
			require.NoError(t, err)

			res, err := s.Run()
			if tc.Stalled {
				assert.True(t, errors.Is(err, sim.ErrStalled), "expected stall, got %v", err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.Ticks, res.Ticks)

			var buf bytes.Buffer
			require.NoError(t, WriteResult(&buf, res))
			assert.Equal(t, tc.ExpectedOutput, buf.String())
		})
	}
}
