// Package sketchpath routes lines between points on a sketched canvas.
//
// 🚀 What is sketchpath?
//
//	A user draws obstacle segments on a cell canvas; for each new pair of
//	points sketchpath finds a walkable route that avoids everything drawn
//	so far, including routes accepted earlier:
//		• gridpath/ – the grid search engine: cells, grid, request,
//		  depth-first traversal with locally F-sorted neighbors, path
//		  reconstruction, region labeling
//		• canvas/   – the drawing session: obstacles, accepted routes,
//		  Bresenham rasterization, thread-safe
//		• render/   – ASCII maps (termenv colors) and PNG images (gg)
//		• config/   – YAML scenario files
//		• metrics/  – Prometheus collectors for route outcomes
//
// ✨ Entry points
//
//   - Library: gridpath.Search for a one-shot search over a [][]bool.
//   - CLI:     cmd/sketchpath route replays a scenario offline.
//   - Server:  cmd/sketchpath serve exposes a canvas over HTTP.
//
// Quick example:
//
//	walkable := [][]bool{
//		{true, true, true},
//		{true, false, true},
//		{true, true, true},
//	}
//	res, err := gridpath.Search(gridpath.NewRequest(
//		gridpath.Coord{X: 0, Y: 0}, gridpath.Coord{X: 2, Y: 2}, walkable))
//	// res.Path == [(1,0) (2,0) (2,1) (2,2)]
package sketchpath

// Version is the release printed by `sketchpath version`.
const Version = "0.3.0"
