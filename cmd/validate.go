package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/treasuremap/treasure-sim/sim"
)

var (
	validateInput  string
	validateFormat string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a map parses and all coordinates are in bounds",
	Run: func(cmd *cobra.Command, args []string) {
		if err := validateScenario(validateInput, validateFormat, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Invalid map: %v", err)
		}
	},
}

// validateScenario builds a simulator from the input without running it.
func validateScenario(path, format string, out io.Writer) error {
	scn, err := loadScenario(path, format)
	if err != nil {
		return err
	}
	s, err := sim.NewSimulator(scn, sim.DefaultConfig())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s: %dx%d map, %d mountains, %d treasures, %d agents\n",
		path, s.Grid.Width(), s.Grid.Height(), len(scn.Mountains), s.InitialTreasures(), len(s.Agents))
	return err
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "Map file to check")
	validateCmd.Flags().StringVar(&validateFormat, "format", "", "Input format: text or yaml (default: from extension)")
	_ = validateCmd.MarkFlagRequired("input")
}
