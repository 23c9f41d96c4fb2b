// Package canvas keeps the drawing session around the gridpath engine:
// obstacle segments drawn by the user and routes accepted so far.
//
// Every Route request rasterizes the current obstacles and accepted routes
// into a fresh walkability matrix (Bresenham lines, so a drawn segment is an
// 8-connected wall that no 4-connected route can slip through), runs a fresh
// gridpath.Engine on it, and accepts a non-empty result as a new obstacle
// polyline: later routes avoid earlier ones.
//
// A Canvas is safe for concurrent use; Route calls are serialized so that each
// search sees every route accepted before it.
package canvas
