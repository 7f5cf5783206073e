package sim

import "fmt"

// CellKind is the content class of a grid cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellMountain
	CellTreasure
)

func (k CellKind) String() string {
	switch k {
	case CellMountain:
		return "mountain"
	case CellTreasure:
		return "treasure"
	default:
		return "empty"
	}
}

// Cell is the content of one grid cell. Treasures is non-zero only for
// CellTreasure and is then at least 1.
type Cell struct {
	Kind      CellKind
	Treasures int
}

// Feature is a non-empty cell together with its coordinate.
type Feature struct {
	Position
	Cell
}

// GridMap owns the grid dimensions and per-cell contents. It knows nothing
// about agents; they reference it only through coordinates.
//
// Dimensions are fixed after construction. The only mutation after setup is
// CollectTreasure.
type GridMap struct {
	width  int
	height int
	cells  [][]Cell // cells[y][x]
}

// NewGridMap creates an empty width×height grid.
func NewGridMap(width, height int) (*GridMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, width, height)
	}
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	return &GridMap{width: width, height: height, cells: cells}, nil
}

func (g *GridMap) Width() int  { return g.width }
func (g *GridMap) Height() int { return g.height }

// InBounds reports whether p lies inside the grid.
func (g *GridMap) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *GridMap) checkBounds(what string, p Position) error {
	if !g.InBounds(p) {
		return &OutOfBoundsError{What: what, Pos: p, Width: g.width, Height: g.height}
	}
	return nil
}

// CellAt returns the cell at (x, y).
func (g *GridMap) CellAt(x, y int) (Cell, error) {
	if err := g.checkBounds("cell", Position{x, y}); err != nil {
		return Cell{}, err
	}
	return g.cells[y][x], nil
}

// IsPassable is true unless the cell is a mountain. Out-of-bounds cells are
// reported as impassable.
func (g *GridMap) IsPassable(x, y int) bool {
	c, err := g.CellAt(x, y)
	if err != nil {
		return false
	}
	return c.Kind != CellMountain
}

// Clamp restricts p to the nearest in-bounds cell.
func (g *GridMap) Clamp(p Position) Position {
	return Position{X: clampInt(p.X, 0, g.width-1), Y: clampInt(p.Y, 0, g.height-1)}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// PlaceMountain marks (x, y) as impassable.
func (g *GridMap) PlaceMountain(x, y int) error {
	if err := g.checkBounds("mountain", Position{x, y}); err != nil {
		return err
	}
	if g.cells[y][x].Kind == CellTreasure {
		return fmt.Errorf("%w at %s", ErrOverlappingFeature, Position{x, y})
	}
	g.cells[y][x] = Cell{Kind: CellMountain}
	return nil
}

// PlaceTreasure adds count treasures at (x, y). Repeated records for the same
// cell accumulate.
func (g *GridMap) PlaceTreasure(x, y, count int) error {
	if err := g.checkBounds("treasure", Position{x, y}); err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("%w: got %d at %s", ErrInvalidTreasure, count, Position{x, y})
	}
	c := &g.cells[y][x]
	if c.Kind == CellMountain {
		return fmt.Errorf("%w at %s", ErrOverlappingFeature, Position{x, y})
	}
	c.Kind = CellTreasure
	c.Treasures += count
	return nil
}

// CollectTreasure takes one treasure from (x, y) and returns 1, turning the
// cell empty when its last treasure is taken. Non-treasure and out-of-bounds
// cells return 0 and are left untouched.
func (g *GridMap) CollectTreasure(x, y int) int {
	if !g.InBounds(Position{x, y}) {
		return 0
	}
	c := &g.cells[y][x]
	if c.Kind != CellTreasure {
		return 0
	}
	if c.Treasures > 1 {
		c.Treasures--
	} else {
		*c = Cell{}
	}
	return 1
}

// Features lists every non-empty cell in row-major order.
func (g *GridMap) Features() []Feature {
	var out []Feature
	for y, row := range g.cells {
		for x, c := range row {
			if c.Kind != CellEmpty {
				out = append(out, Feature{Position: Position{x, y}, Cell: c})
			}
		}
	}
	return out
}

// TotalTreasures is the number of treasures still on the map.
func (g *GridMap) TotalTreasures() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			n += c.Treasures
		}
	}
	return n
}
