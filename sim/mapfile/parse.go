// Package mapfile reads and writes the line-oriented map text format:
//
//	C - 3 - 4
//	M - 1 - 0
//	T - 0 - 3 - 2
//	A - Lara - 1 - 1 - S - AADADAGGA
//
// Fields are separated by " - ". Lines starting with '#' and blank lines
// are ignored.
package mapfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/treasuremap/treasure-sim/sim"
)

// Record type letters.
const (
	KindMap      = "C"
	KindMountain = "M"
	KindTreasure = "T"
	KindAgent    = "A"
)

const separator = " - "

var (
	ErrMissingMap   = errors.New("missing map dimensions line (C)")
	ErrDuplicateMap = errors.New("map dimensions declared twice")
)

// ParseError locates a malformed line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseFile opens and parses a map file.
func ParseFile(path string) (*sim.Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening map file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a map from r. It checks syntax only; coordinate bounds are
// checked when the simulator is built. Unknown record types are skipped
// with a warning.
func Parse(r io.Reader) (*sim.Scenario, error) {
	scn := &sim.Scenario{}
	sawMap := false
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if trimmed := strings.TrimSpace(line); trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Split(line, separator)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		wrap := func(err error) error { return &ParseError{Line: lineNo, Text: line, Err: err} }

		switch fields[0] {
		case KindMap:
			if sawMap {
				return nil, wrap(ErrDuplicateMap)
			}
			v, err := ints(fields, 2)
			if err != nil {
				return nil, wrap(err)
			}
			scn.Width, scn.Height = v[0], v[1]
			sawMap = true
		case KindMountain:
			v, err := ints(fields, 2)
			if err != nil {
				return nil, wrap(err)
			}
			scn.Mountains = append(scn.Mountains, sim.Position{X: v[0], Y: v[1]})
		case KindTreasure:
			v, err := ints(fields, 3)
			if err != nil {
				return nil, wrap(err)
			}
			scn.Treasures = append(scn.Treasures, sim.TreasureSpec{X: v[0], Y: v[1], Count: v[2]})
		case KindAgent:
			a, err := parseAgent(fields)
			if err != nil {
				return nil, wrap(err)
			}
			scn.Agents = append(scn.Agents, a)
		default:
			logrus.Warnf("mapfile: line %d: skipping unknown record type %q", lineNo, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	if !sawMap {
		return nil, ErrMissingMap
	}
	return scn, nil
}

// ints parses fields[1:] as exactly n integers.
func ints(fields []string, n int) ([]int, error) {
	if len(fields) != n+1 {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(fields)-1)
	}
	out := make([]int, n)
	for i := range out {
		v, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseAgent(fields []string) (sim.AgentSpec, error) {
	// The instruction field may be absent for an agent that never moves.
	if len(fields) != 5 && len(fields) != 6 {
		return sim.AgentSpec{}, fmt.Errorf("expected name, x, y, orientation and instructions, got %d values", len(fields)-1)
	}
	x, err := strconv.Atoi(fields[2])
	if err != nil {
		return sim.AgentSpec{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.Atoi(fields[3])
	if err != nil {
		return sim.AgentSpec{}, fmt.Errorf("y: %w", err)
	}
	o, err := sim.ParseOrientation(fields[4])
	if err != nil {
		return sim.AgentSpec{}, err
	}
	spec := sim.AgentSpec{Name: fields[1], X: x, Y: y, Orientation: o}
	if len(fields) == 6 {
		spec.Instructions = fields[5]
	}
	return spec, nil
}
