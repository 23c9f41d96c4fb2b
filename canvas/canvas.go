package canvas

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/katalvlaran/sketchpath/gridpath"
)

var (
	// ErrBadSize indicates a non-positive canvas width or height.
	ErrBadSize = errors.New("canvas: width and height must be positive")
	// ErrOutOfBounds indicates a segment endpoint outside the canvas.
	ErrOutOfBounds = errors.New("canvas: point out of bounds")
)

// MaxCells bounds width×height. Every route request allocates a fresh
// walkability matrix and search grid of that many cells.
const MaxCells = 1 << 22

// Segment is a straight obstacle line between two cells, endpoints included.
type Segment struct {
	From gridpath.Coord `json:"from" yaml:"from"`
	To   gridpath.Coord `json:"to" yaml:"to"`
}

// Route is the outcome of one request on the canvas.
type Route struct {
	ID       int              `json:"id"`
	Start    gridpath.Coord   `json:"start"`
	Goal     gridpath.Coord   `json:"goal"`
	Path     []gridpath.Coord `json:"path"`
	Found    bool             `json:"found"`
	Expanded int              `json:"expanded"`
	// Accepted is true when the route was non-empty and now blocks later routes.
	Accepted bool `json:"accepted"`
}

// Polyline returns the route as drawn: the start followed by every path step.
func (r Route) Polyline() []gridpath.Coord {
	pts := make([]gridpath.Coord, 0, len(r.Path)+1)
	pts = append(pts, r.Start)

	return append(pts, r.Path...)
}

// Observer receives the outcome of every Route call.
type Observer interface {
	ObserveRoute(r Route, elapsed time.Duration, err error)
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithLogger sets the logger; the default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Canvas) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver installs an Observer, typically a metrics collector.
func WithObserver(o Observer) Option {
	return func(c *Canvas) {
		c.observer = o
	}
}

// WithSearchOptions forwards options to every gridpath engine the canvas builds.
func WithSearchOptions(opts ...gridpath.Option) Option {
	return func(c *Canvas) {
		c.searchOpts = append(c.searchOpts, opts...)
	}
}

// Canvas holds obstacles and accepted routes on a Width×Height cell grid.
type Canvas struct {
	mu         sync.RWMutex
	width      int
	height     int
	obstacles  []Segment
	routes     []Route
	nextID     int
	logger     *slog.Logger
	observer   Observer
	searchOpts []gridpath.Option
}

// New returns an empty canvas of width×height cells. The size must be positive
// and at most MaxCells; search options are checked here rather than per route.
func New(width, height int, opts ...Option) (*Canvas, error) {
	if width <= 0 || height <= 0 || width > MaxCells/height {
		return nil, fmt.Errorf("%w: %dx%d (max %d cells)", ErrBadSize, width, height, MaxCells)
	}
	c := &Canvas{
		width:  width,
		height: height,
		nextID: 1,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range opts {
		fn(c)
	}
	if _, err := gridpath.ResolveOptions(c.searchOpts...); err != nil {
		return nil, fmt.Errorf("canvas: %w", err)
	}

	return c, nil
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

func (c *Canvas) inBounds(p gridpath.Coord) bool {
	return p.X >= 0 && p.X < c.width && p.Y >= 0 && p.Y < c.height
}

// AddObstacle records a user-drawn segment. Both endpoints must lie on the canvas.
func (c *Canvas) AddObstacle(s Segment) error {
	for _, p := range []gridpath.Coord{s.From, s.To} {
		if !c.inBounds(p) {
			return fmt.Errorf("%w: %v not in %dx%d", ErrOutOfBounds, p, c.width, c.height)
		}
	}
	c.mu.Lock()
	c.obstacles = append(c.obstacles, s)
	c.mu.Unlock()
	c.logger.Debug("obstacle added", "from", s.From, "to", s.To)

	return nil
}

// Walkability rasterizes obstacles and accepted routes into a fresh matrix
// (walkable[y][x]); covered cells are false, everything else true.
func (c *Canvas) Walkability() [][]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.walkability()
}

func (c *Canvas) walkability() [][]bool {
	m := make([][]bool, c.height)
	for y := range m {
		m[y] = make([]bool, c.width)
		for x := range m[y] {
			m[y][x] = true
		}
	}
	for _, s := range c.obstacles {
		stamp(m, []gridpath.Coord{s.From, s.To})
	}
	for _, r := range c.routes {
		if r.Accepted {
			stamp(m, r.Polyline())
		}
	}

	return m
}

// Route searches from start to goal around everything drawn so far. A non-empty
// result is accepted and blocks later routes. No route is not an error:
// the returned Route has Found == false and an empty Path.
func (c *Canvas) Route(start, goal gridpath.Coord) (Route, error) {
	return c.RouteContext(context.Background(), start, goal)
}

// RouteContext is Route with a context that aborts the search; nothing is
// accepted when it is canceled.
//
// The canvas write lock is held for the whole search so that each route sees
// every route accepted before it. Readers (Walkability, Routes, Obstacles,
// Connected) wait meanwhile; bound long searches with ctx or
// gridpath.WithMaxExpansions.
func (c *Canvas) RouteContext(ctx context.Context, start, goal gridpath.Coord) (Route, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	began := time.Now()
	r := Route{Start: start, Goal: goal, Path: []gridpath.Coord{}}
	opts := append(append([]gridpath.Option(nil), c.searchOpts...), gridpath.WithContext(ctx))
	res, err := gridpath.Search(gridpath.NewRequest(start, goal, c.walkability()), opts...)
	if err != nil {
		err = fmt.Errorf("canvas: route %v→%v: %w", start, goal, err)
		c.logger.Warn("route rejected", "start", start, "goal", goal, "error", err)
		c.observe(r, began, err)
		return r, err
	}

	r.Path = res.Path
	r.Found = res.Found
	r.Expanded = res.Expanded
	if len(res.Path) > 0 {
		r.ID = c.nextID
		r.Accepted = true
		c.nextID++
		c.routes = append(c.routes, r)
	}
	c.logger.Info("route searched",
		"start", start,
		"goal", goal,
		"found", r.Found,
		"steps", len(r.Path),
		"expanded", r.Expanded,
	)
	c.observe(r, began, nil)

	return r, nil
}

func (c *Canvas) observe(r Route, began time.Time, err error) {
	if c.observer != nil {
		c.observer.ObserveRoute(r, time.Since(began), err)
	}
}

// Connected reports whether Route(a, b) would find a path on the current
// canvas, under the canvas connectivity. Like Route it treats a as free even
// when a lies on an obstacle or an accepted route; b must be free unless it is
// a. It does not search and does not accept anything.
func (c *Canvas) Connected(a, b gridpath.Coord) (bool, error) {
	o, err := gridpath.ResolveOptions(c.searchOpts...)
	if err != nil {
		return false, fmt.Errorf("canvas: %w", err)
	}

	c.mu.RLock()
	walk := c.walkability()
	c.mu.RUnlock()

	if c.inBounds(a) {
		walk[a.Y][a.X] = true
	}
	ok, err := gridpath.Connected(walk, a, b, o.Conn)
	if err != nil {
		return false, fmt.Errorf("canvas: connected %v→%v: %w", a, b, err)
	}

	return ok, nil
}

// Obstacles returns a copy of the drawn segments.
func (c *Canvas) Obstacles() []Segment {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]Segment(nil), c.obstacles...)
}

// Routes returns a copy of the accepted routes in acceptance order.
func (c *Canvas) Routes() []Route {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]Route(nil), c.routes...)
}

// Reset clears obstacles and routes.
func (c *Canvas) Reset() {
	c.mu.Lock()
	c.obstacles = nil
	c.routes = nil
	c.nextID = 1
	c.mu.Unlock()
	c.logger.Info("canvas reset")
}
