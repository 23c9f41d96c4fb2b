package gridpath

// reconstruct follows predecessor links from the goal back to the start and
// returns the coordinates in start→goal order, start excluded.
// Pred links are acyclic: a cell's G is always strictly greater than its predecessor's.
func (e *Engine) reconstruct() []Coord {
	var path []Coord
	for at := e.goal; e.grid.cells[at].HasPredecessor(); at = e.grid.cells[at].Pred {
		path = append(path, e.grid.cells[at].Coord)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// Search builds a fresh Engine for req and runs it once.
func Search(req Request, opts ...Option) (Result, error) {
	e, err := NewEngine(req, opts...)
	if err != nil {
		return Result{Path: []Coord{}}, err
	}

	return e.Run()
}
