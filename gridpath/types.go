package gridpath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Coord is an integer grid position. X grows east, Y grows south.
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// String renders the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// ParseCoord reads "x,y", optionally wrapped in parentheses as String prints it.
func ParseCoord(s string) (Coord, error) {
	t := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(s), "("), ")")
	xs, ys, ok := strings.Cut(t, ",")
	if !ok {
		return Coord{}, fmt.Errorf("gridpath: coordinate %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Coord{}, fmt.Errorf("gridpath: coordinate %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Coord{}, fmt.Errorf("gridpath: coordinate %q: %w", s, err)
	}

	return Coord{X: x, Y: y}, nil
}

// Add returns c shifted by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// CellState is the search state of a Cell. It only ever moves forward:
// Untested → Open → Closed.
type CellState uint8

const (
	// Untested: not yet discovered by the traversal.
	Untested CellState = iota
	// Open: discovered, not yet expanded; its G may still decrease.
	Open
	// Closed: expanded; never revisited.
	Closed
)

func (s CellState) String() string {
	switch s {
	case Untested:
		return "untested"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(s))
	}
}

// noPredecessor marks a Cell without a predecessor (the start, or undiscovered cells).
const noPredecessor = -1

// Cell is one grid position together with its search bookkeeping.
// Pred is a linear index into the owning Grid, never an owning reference.
type Cell struct {
	Coord    Coord
	Walkable bool
	State    CellState
	G        float64 // accumulated cost from the start along Pred links
	H        float64 // heuristic distance to the goal, fixed at construction
	Pred     int     // predecessor index, or -1
}

// F is the local ranking key G + H.
func (c Cell) F() float64 {
	return c.G + c.H
}

// HasPredecessor reports whether the cell was reached from another cell.
func (c Cell) HasPredecessor() bool {
	return c.Pred != noPredecessor
}

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: E, N, W, S.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: E, N, W, S, NE, NW, SW, SE.
	Conn8
)

func (c Connectivity) String() string {
	switch c {
	case Conn4:
		return "4"
	case Conn8:
		return "8"
	default:
		return fmt.Sprintf("Connectivity(%d)", int(c))
	}
}

// ParseConnectivity accepts "4" / "conn4" and "8" / "conn8".
func ParseConnectivity(s string) (Connectivity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "4", "conn4":
		return Conn4, nil
	case "8", "conn8":
		return Conn8, nil
	}

	return Conn4, fmt.Errorf("%w: unknown connectivity %q", ErrOptionViolation, s)
}

// offsets returns neighbor deltas in enumeration order.
func (c Connectivity) offsets() []Coord {
	if c == Conn8 {
		return []Coord{{1, 0}, {0, -1}, {-1, 0}, {0, 1}, {1, -1}, {-1, -1}, {-1, 1}, {1, 1}}
	}

	return []Coord{{1, 0}, {0, -1}, {-1, 0}, {0, 1}}
}

// moveCost is the traversal cost of a single step by d: 1 orthogonal, √2 diagonal.
// Symmetric and strictly positive.
func moveCost(d Coord) float64 {
	if d.X != 0 && d.Y != 0 {
		return math.Sqrt2
	}

	return 1
}

// Heuristic selects the distance metric used for H.
type Heuristic int

const (
	// Euclidean is the straight-line distance. Consistent for Conn4 and Conn8.
	Euclidean Heuristic = iota
	// Manhattan is |dx|+|dy|. Consistent for Conn4 only.
	Manhattan
	// Octile is the exact obstacle-free Conn8 distance.
	Octile
	// Chebyshev is max(|dx|,|dy|).
	Chebyshev
)

var heuristicNames = map[Heuristic]string{
	Euclidean: "euclidean",
	Manhattan: "manhattan",
	Octile:    "octile",
	Chebyshev: "chebyshev",
}

func (h Heuristic) String() string {
	if name, ok := heuristicNames[h]; ok {
		return name
	}

	return fmt.Sprintf("Heuristic(%d)", int(h))
}

// ParseHeuristic maps a metric name to a Heuristic. The empty string selects Euclidean.
func ParseHeuristic(s string) (Heuristic, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Euclidean, nil
	}
	for h, n := range heuristicNames {
		if n == name {
			return h, nil
		}
	}

	return Euclidean, fmt.Errorf("%w: unknown heuristic %q", ErrOptionViolation, s)
}

// Distance returns the metric distance between a and b.
func (h Heuristic) Distance(a, b Coord) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dy := math.Abs(float64(a.Y - b.Y))
	switch h {
	case Manhattan:
		return dx + dy
	case Octile:
		lo, hi := math.Min(dx, dy), math.Max(dx, dy)
		return hi - lo + lo*math.Sqrt2
	case Chebyshev:
		return math.Max(dx, dy)
	default:
		return math.Hypot(dx, dy)
	}
}

// Result is the outcome of a single search.
type Result struct {
	// Path runs from the first step after the start to the goal, inclusive.
	// Empty when no route exists or when start == goal.
	Path []Coord

	// Found is true when the goal was reached (including start == goal).
	Found bool

	// Expanded counts the cells closed during the traversal.
	Expanded int

	// Cost is the G of the goal along the returned path.
	Cost float64
}
