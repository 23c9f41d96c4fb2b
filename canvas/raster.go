package canvas

import "github.com/katalvlaran/sketchpath/gridpath"

// Line returns the cells covered by the segment a→b using Bresenham's
// algorithm, both endpoints included, in order from a to b.
// Consecutive cells are 8-adjacent.
func Line(a, b gridpath.Coord) []gridpath.Coord {
	dx, sx := b.X-a.X, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := b.Y-a.Y, 1
	if dy < 0 {
		dy, sy = -dy, -1
	}

	cells := make([]gridpath.Coord, 0, max(dx, dy)+1)
	x, y := a.X, a.Y
	e := dx - dy
	for {
		cells = append(cells, gridpath.Coord{X: x, Y: y})
		if x == b.X && y == b.Y {
			return cells
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x += sx
		}
		if e2 < dx {
			e += dx
			y += sy
		}
	}
}

// stamp marks every cell of the polyline pts as blocked in m.
// Points are assumed to lie inside m.
func stamp(m [][]bool, pts []gridpath.Coord) {
	if len(pts) == 1 {
		m[pts[0].Y][pts[0].X] = false
		return
	}
	for i := 1; i < len(pts); i++ {
		for _, c := range Line(pts[i-1], pts[i]) {
			m[c.Y][c.X] = false
		}
	}
}
