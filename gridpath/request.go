package gridpath

import "fmt"

// Request is the immutable input of a search: start, goal and a walkability
// matrix indexed as Walkable[y][x]. The matrix is supplied, not owned.
type Request struct {
	Start    Coord
	Goal     Coord
	Walkable [][]bool
}

// NewRequest bundles start, goal and matrix into a Request.
func NewRequest(start, goal Coord, walkable [][]bool) Request {
	return Request{Start: start, Goal: goal, Walkable: walkable}
}

// Validate checks the matrix shape and that both endpoints lie inside it.
// Errors wrap ErrEmptyGrid, ErrNonRectangular, ErrStartOutOfBounds or ErrGoalOutOfBounds.
func (r Request) Validate() error {
	w, h, err := dimensions(r.Walkable)
	if err != nil {
		return err
	}
	if !inside(r.Start, w, h) {
		return fmt.Errorf("%w: %v not in %dx%d", ErrStartOutOfBounds, r.Start, w, h)
	}
	if !inside(r.Goal, w, h) {
		return fmt.Errorf("%w: %v not in %dx%d", ErrGoalOutOfBounds, r.Goal, w, h)
	}

	return nil
}

func inside(c Coord, w, h int) bool {
	return c.X >= 0 && c.X < w && c.Y >= 0 && c.Y < h
}

// stepAllowed reports whether a move by d from c may be taken given a walkability
// predicate. Diagonal steps additionally require both orthogonal corners to be open.
func stepAllowed(c, d Coord, walkable func(Coord) bool) bool {
	if !walkable(c.Add(d)) {
		return false
	}
	if d.X != 0 && d.Y != 0 {
		return walkable(Coord{X: c.X + d.X, Y: c.Y}) && walkable(Coord{X: c.X, Y: c.Y + d.Y})
	}

	return true
}
