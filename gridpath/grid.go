package gridpath

import "fmt"

// Grid owns every Cell of one search. Width and Height are fixed at construction;
// cells are stored row-major and addressed by index(x,y) = y*Width + x.
type Grid struct {
	Width, Height int
	Goal          Coord
	cells         []Cell
}

// NewGrid builds a Grid from a non-empty, rectangular walkability matrix
// (walkable[y][x], true = passable). H of every cell is computed once against goal.
// The matrix is read only; the Grid keeps no reference to it.
// Returns ErrEmptyGrid or ErrNonRectangular for malformed input.
// Complexity: O(W×H) time and memory.
func NewGrid(walkable [][]bool, goal Coord, h Heuristic) (*Grid, error) {
	w, ht, err := dimensions(walkable)
	if err != nil {
		return nil, err
	}
	g := &Grid{
		Width:  w,
		Height: ht,
		Goal:   goal,
		cells:  make([]Cell, w*ht),
	}
	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			c := Coord{X: x, Y: y}
			g.cells[g.index(c)] = Cell{
				Coord:    c,
				Walkable: walkable[y][x],
				State:    Untested,
				H:        h.Distance(c, goal),
				Pred:     noPredecessor,
			}
		}
	}

	return g, nil
}

// dimensions validates the matrix shape and returns width and height.
func dimensions(walkable [][]bool) (int, int, error) {
	if len(walkable) == 0 || len(walkable[0]) == 0 {
		return 0, 0, ErrEmptyGrid
	}
	w := len(walkable[0])
	for y, row := range walkable {
		if len(row) != w {
			return 0, 0, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNonRectangular, y, len(row), w)
		}
	}

	return w, len(walkable), nil
}

// InBounds reports whether c lies within [0,Width)×[0,Height).
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

func (g *Grid) index(c Coord) int {
	return c.Y*g.Width + c.X
}

// Coordinate converts a row-major cell index back to (x,y).
func (g *Grid) Coordinate(i int) Coord {
	return Coord{X: i % g.Width, Y: i / g.Width}
}

// Cell returns a copy of the cell at c; ok is false when c is out of bounds.
func (g *Grid) Cell(c Coord) (Cell, bool) {
	if !g.InBounds(c) {
		return Cell{}, false
	}

	return g.cells[g.index(c)], true
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// walkable reports whether c is in bounds and passable.
func (g *Grid) walkable(c Coord) bool {
	return g.InBounds(c) && g.cells[g.index(c)].Walkable
}
