package mapfile

import (
	"bufio"
	"fmt"
	"io"

	"github.com/treasuremap/treasure-sim/sim"
)

// WriteResult emits the end state: dimensions, mountains, remaining
// treasures (row-major) and every agent in input order with its collected
// treasure count.
func WriteResult(w io.Writer, res *sim.Result) error {
	bw := bufio.NewWriter(w)
	writeGrid(bw, res.Grid)
	for _, a := range res.Agents {
		fmt.Fprintf(bw, "%s - %s - %d - %d - %s - %d\n",
			KindAgent, a.Name, a.Position.X, a.Position.Y, a.Orientation.Letter(), a.TreasuresCollected)
	}
	return bw.Flush()
}

func writeGrid(w io.Writer, g *sim.GridMap) {
	fmt.Fprintf(w, "%s - %d - %d\n", KindMap, g.Width(), g.Height())
	features := g.Features()
	for _, f := range features {
		if f.Kind == sim.CellMountain {
			fmt.Fprintf(w, "%s - %d - %d\n", KindMountain, f.X, f.Y)
		}
	}
	for _, f := range features {
		if f.Kind == sim.CellTreasure {
			fmt.Fprintf(w, "%s - %d - %d - %d\n", KindTreasure, f.X, f.Y, f.Treasures)
		}
	}
}

// WriteScenario emits scn as map input, preserving record order.
func WriteScenario(w io.Writer, scn *sim.Scenario) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s - %d - %d\n", KindMap, scn.Width, scn.Height)
	for _, m := range scn.Mountains {
		fmt.Fprintf(bw, "%s - %d - %d\n", KindMountain, m.X, m.Y)
	}
	for _, t := range scn.Treasures {
		fmt.Fprintf(bw, "%s - %d - %d - %d\n", KindTreasure, t.X, t.Y, t.Count)
	}
	for _, a := range scn.Agents {
		fmt.Fprintf(bw, "%s - %s - %d - %d - %s", KindAgent, a.Name, a.X, a.Y, a.Orientation.Letter())
		if a.Instructions != "" {
			fmt.Fprintf(bw, "%s%s", separator, a.Instructions)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
