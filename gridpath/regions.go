package gridpath

import "fmt"

// Regions finds all contiguous regions of walkable cells under conn, applying the
// same no-corner-cutting rule as the search. Each region is a slice of row-major
// cell indices (y*width + x) in BFS discovery order; regions are ordered by their
// first cell in row-major scan.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func Regions(walkable [][]bool, conn Connectivity) ([][]int, error) {
	w, h, err := dimensions(walkable)
	if err != nil {
		return nil, err
	}
	open := func(c Coord) bool {
		return inside(c, w, h) && walkable[c.Y][c.X]
	}
	seen := make([]bool, w*h)
	offsets := conn.offsets()
	var regions [][]int

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i0 := y*w + x
			if !walkable[y][x] || seen[i0] {
				continue
			}
			// BFS to collect the region
			queue := []int{i0}
			seen[i0] = true
			for qi := 0; qi < len(queue); qi++ {
				u := Coord{X: queue[qi] % w, Y: queue[qi] / w}
				for _, d := range offsets {
					if !stepAllowed(u, d, open) {
						continue
					}
					v := u.Add(d)
					vi := v.Y*w + v.X
					if !seen[vi] {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			regions = append(regions, queue)
		}
	}

	return regions, nil
}

// Connected reports whether a and b are walkable and lie in the same region.
// A search from a walkable start reaches the goal exactly when Connected is true.
func Connected(walkable [][]bool, a, b Coord, conn Connectivity) (bool, error) {
	w, h, err := dimensions(walkable)
	if err != nil {
		return false, err
	}
	for _, c := range []Coord{a, b} {
		if !inside(c, w, h) {
			return false, fmt.Errorf("%w: %v not in %dx%d", ErrOutOfBounds, c, w, h)
		}
	}
	if !walkable[a.Y][a.X] || !walkable[b.Y][b.X] {
		return false, nil
	}
	regions, err := Regions(walkable, conn)
	if err != nil {
		return false, err
	}
	ai, bi := a.Y*w+a.X, b.Y*w+b.X
	for _, r := range regions {
		var hasA, hasB bool
		for _, i := range r {
			hasA = hasA || i == ai
			hasB = hasB || i == bi
		}
		if hasA || hasB {
			return hasA && hasB, nil
		}
	}

	return false, nil
}
