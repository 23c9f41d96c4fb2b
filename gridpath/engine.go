package gridpath

import (
	"cmp"
	"fmt"
	"slices"
	"sync/atomic"
)

// frame is one level of the depth-first descent: the expanded cell and its
// admitted neighbors, sorted by F, with a cursor to the next one to try.
type frame struct {
	cell  int
	cands []int
	next  int
}

// Engine runs exactly one depth-first search over a Grid it owns.
// Construct a fresh Engine per Request; Run refuses to run twice.
type Engine struct {
	grid     *Grid
	start    int
	goal     int
	opts     Options
	offsets  []Coord
	expanded int
	consumed atomic.Bool
}

// NewEngine validates req, applies opts and builds the Grid. The start cell is
// the only Open cell, with G = 0; every other cell is Untested.
func NewEngine(req Request, opts ...Option) (*Engine, error) {
	// 1. Validate request shape and endpoints
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. Apply options
	o, err := ResolveOptions(opts...)
	if err != nil {
		return nil, err
	}

	// 3. Build grid with H fixed against the goal
	g, err := NewGrid(req.Walkable, req.Goal, o.Heuristic)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		grid:    g,
		start:   g.index(req.Start),
		goal:    g.index(req.Goal),
		opts:    o,
		offsets: o.Conn.offsets(),
	}
	s := &g.cells[e.start]
	s.State = Open
	s.G = 0

	return e, nil
}

// Grid exposes the engine's grid for inspection. Cells mutate during Run.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Consumed reports whether Run has already been called.
func (e *Engine) Consumed() bool {
	return e.consumed.Load()
}

// Run executes the traversal. It returns ErrEngineConsumed on any call after the
// first, including calls racing from other goroutines: exactly one caller runs.
//
// Behavior:
//  1. start == goal → Found with an empty path, nothing expanded.
//  2. Close the current cell, admit its neighbors, sort them by F (stable).
//  3. Walk candidates in order: the goal ends the search; a closed candidate is
//     skipped; anything else is expanded as a new frame on the stack.
//  4. A frame with no candidates left is popped (that branch failed).
//  5. An empty stack means no route.
func (e *Engine) Run() (Result, error) {
	if !e.consumed.CompareAndSwap(false, true) {
		return Result{Path: []Coord{}}, ErrEngineConsumed
	}

	if e.start == e.goal {
		return Result{Path: []Coord{}, Found: true}, nil
	}

	found, err := e.traverse()
	if err != nil {
		return Result{Path: []Coord{}, Expanded: e.expanded}, err
	}
	if !found {
		return Result{Path: []Coord{}, Expanded: e.expanded}, nil
	}

	return Result{
		Path:     e.reconstruct(),
		Found:    true,
		Expanded: e.expanded,
		Cost:     e.grid.cells[e.goal].G,
	}, nil
}

// traverse performs the descent with an explicit stack of frames.
func (e *Engine) traverse() (bool, error) {
	root, err := e.expand(e.start)
	if err != nil {
		return false, err
	}
	stack := []frame{root}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.cands) {
			stack = stack[:len(stack)-1]
			continue
		}
		n := top.cands[top.next]
		top.next++

		if n == e.goal {
			return true, nil
		}
		// closed by a deeper branch since this frame was sorted
		if e.grid.cells[n].State == Closed {
			continue
		}

		fr, err := e.expand(n)
		if err != nil {
			return false, err
		}
		stack = append(stack, fr)
	}

	return false, nil
}

// expand closes cell i and returns its frame of sorted candidates.
func (e *Engine) expand(i int) (frame, error) {
	select {
	case <-e.opts.Ctx.Done():
		return frame{}, fmt.Errorf("gridpath: search canceled after %d cells: %w", e.expanded, e.opts.Ctx.Err())
	default:
	}
	c := &e.grid.cells[i]
	if e.opts.MaxExpansions >= 0 && e.expanded >= e.opts.MaxExpansions {
		return frame{}, fmt.Errorf("%w: %d cells closed", ErrExpansionLimit, e.expanded)
	}
	c.State = Closed
	e.expanded++

	if e.opts.OnExpand != nil {
		if err := e.opts.OnExpand(c.Coord); err != nil {
			return frame{}, fmt.Errorf("gridpath: OnExpand hook for %v: %w", c.Coord, err)
		}
	}

	cands := e.admit(i)
	slices.SortStableFunc(cands, func(a, b int) int {
		return cmp.Compare(e.grid.cells[a].F(), e.grid.cells[b].F())
	})

	return frame{cell: i, cands: cands}, nil
}

// admit applies the admission rule to every neighbor of from and returns the
// admitted indices in enumeration order.
//
//   - out of bounds, unwalkable, corner-cutting or Closed → discarded
//   - Open → admitted only if from.G + step < G; Pred and G move together
//   - Untested → Pred = from, G = from.G + step, state Open, admitted
func (e *Engine) admit(from int) []int {
	fc := e.grid.cells[from]
	cands := make([]int, 0, len(e.offsets))

	for _, d := range e.offsets {
		if !stepAllowed(fc.Coord, d, e.grid.walkable) {
			continue
		}
		i := e.grid.index(fc.Coord.Add(d))
		n := &e.grid.cells[i]
		tentative := fc.G + moveCost(d)

		switch n.State {
		case Closed:
			continue
		case Open:
			if tentative >= n.G {
				continue
			}
			n.G = tentative
			n.Pred = from
		case Untested:
			n.G = tentative
			n.Pred = from
			n.State = Open
		}
		cands = append(cands, i)
	}

	return cands
}
