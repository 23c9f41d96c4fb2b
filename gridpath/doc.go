// Package gridpath finds walkable routes across a boolean walkability grid.
//
// What:
//
//   - Grid: a dense, row-major slice of Cells built from a rectangular [][]bool
//     (true = walkable). Every Cell carries its search bookkeeping: state
//     (Untested → Open → Closed), accumulated cost G, heuristic H and a
//     predecessor index.
//   - Request: an immutable bundle of start, goal and walkability matrix.
//   - Engine: a single-shot depth-first search. At every expanded cell the
//     admitted neighbors are sorted locally by F = G + H and descended into in
//     that order; a branch whose candidates are exhausted unwinds one level.
//     There is no global frontier, so routes are not guaranteed to be optimal
//     on obstructed maps.
//   - Regions / Connected: connected-component labeling of walkable cells,
//     useful as a reachability oracle.
//
// Traversal order:
//
//   - Neighbors are enumerated east, north, west, south (Conn4, the default);
//     Conn8 appends north-east, north-west, south-west, south-east.
//   - North is y-1: row 0 is the top of the canvas.
//   - Ties on F keep enumeration order (stable sort).
//   - Diagonal moves never cut a corner past an unwalkable orthogonal cell.
//   - The descent uses an explicit stack of frames, never native recursion,
//     so the depth of a search is bounded by memory rather than goroutine stack.
//
// Costs:
//
//   - Orthogonal move = 1, diagonal move = √2.
//   - H defaults to the straight-line (Euclidean) distance to the goal and is
//     computed once when the Grid is built.
//
// Output:
//
//   - Result.Path runs from the first step after the start up to and including
//     the goal. The start itself is never part of the path.
//   - Start == goal succeeds immediately with an empty path.
//   - No route is not an error: Found is false and Path is empty.
//
// Errors:
//
//   - ErrEmptyGrid, ErrNonRectangular: malformed matrix.
//   - ErrStartOutOfBounds, ErrGoalOutOfBounds: endpoints outside the matrix.
//   - ErrEngineConsumed: Run called twice on one Engine.
//   - ErrExpansionLimit: WithMaxExpansions budget exhausted.
//   - ErrOptionViolation: invalid Option supplied.
//
// Complexity:
//
//   - NewGrid:  O(W×H) time and memory.
//   - Run:      O(W×H×d·log d) time (d = 4 or 8), O(W×H) memory.
//   - Regions:  O(W×H×d) time, O(W×H) memory.
package gridpath
