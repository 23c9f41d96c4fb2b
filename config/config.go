// Package config loads sketchpath scenario files: canvas size, search options,
// pre-drawn obstacles, a list of route requests to replay, and server/log settings.
//
// Example scenario:
//
//	width: 40
//	height: 20
//	connectivity: "4"
//	heuristic: euclidean
//	max_expansions: 5000 # -1 or omitted: unlimited; 0 is rejected
//	obstacles:
//	  - from: [10, 0]
//	    to: [10, 15]
//	routes:
//	  - start: [0, 0]
//	    goal: [39, 19]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/sketchpath/canvas"
	"github.com/katalvlaran/sketchpath/gridpath"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid scenario")

// Point is an [x, y] pair as written in YAML.
type Point [2]int

// Coord converts p to a grid coordinate.
func (p Point) Coord() gridpath.Coord {
	return gridpath.Coord{X: p[0], Y: p[1]}
}

// SegmentSpec is a pre-drawn obstacle.
type SegmentSpec struct {
	From Point `yaml:"from"`
	To   Point `yaml:"to"`
}

// RouteSpec is a route request replayed in order.
type RouteSpec struct {
	Start Point `yaml:"start"`
	Goal  Point `yaml:"goal"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// RenderConfig holds output settings.
type RenderConfig struct {
	// Scale is the PNG pixel size of one cell.
	Scale int `yaml:"scale"`
}

// Config is a parsed scenario.
type Config struct {
	Width         int           `yaml:"width"`
	Height        int           `yaml:"height"`
	Connectivity  string        `yaml:"connectivity"`
	Heuristic     string        `yaml:"heuristic"`
	MaxExpansions int           `yaml:"max_expansions"`
	Log           LogConfig     `yaml:"log"`
	Server        ServerConfig  `yaml:"server"`
	Render        RenderConfig  `yaml:"render"`
	Obstacles     []SegmentSpec `yaml:"obstacles"`
	Routes        []RouteSpec   `yaml:"routes"`
}

// Default returns a 64×48 Conn4/Euclidean canvas served on :8080.
func Default() Config {
	return Config{
		Width:         64,
		Height:        48,
		Connectivity:  "4",
		Heuristic:     "euclidean",
		MaxExpansions: -1,
		Log:           LogConfig{Level: "info"},
		Server:        ServerConfig{Addr: ":8080"},
		Render:        RenderConfig{Scale: 10},
	}
}

// Load reads and parses the scenario file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML over Default() and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks dimensions, option names, the expansion budget and that
// every point lies on the canvas. The canvas may hold at most canvas.MaxCells.
// A zero budget is rejected since it fails every route that needs a step.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 || c.Width > canvas.MaxCells/c.Height {
		return fmt.Errorf("%w: size %dx%d (max %d cells)", ErrInvalidConfig, c.Width, c.Height, canvas.MaxCells)
	}
	if _, err := c.SearchOptions(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.MaxExpansions == 0 {
		return fmt.Errorf("%w: max_expansions must be positive, or -1 for no limit", ErrInvalidConfig)
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("%w: render.scale must be positive", ErrInvalidConfig)
	}
	check := func(what string, i int, p Point) error {
		if p[0] < 0 || p[0] >= c.Width || p[1] < 0 || p[1] >= c.Height {
			return fmt.Errorf("%w: %s[%d] point %v outside %dx%d", ErrInvalidConfig, what, i, p, c.Width, c.Height)
		}
		return nil
	}
	for i, s := range c.Obstacles {
		if err := errors.Join(check("obstacles", i, s.From), check("obstacles", i, s.To)); err != nil {
			return err
		}
	}
	for i, r := range c.Routes {
		if err := errors.Join(check("routes", i, r.Start), check("routes", i, r.Goal)); err != nil {
			return err
		}
	}

	return nil
}

// SearchOptions converts the search settings into gridpath options.
func (c Config) SearchOptions() ([]gridpath.Option, error) {
	conn, err := gridpath.ParseConnectivity(c.Connectivity)
	if err != nil {
		return nil, err
	}
	h, err := gridpath.ParseHeuristic(c.Heuristic)
	if err != nil {
		return nil, err
	}

	return []gridpath.Option{
		gridpath.WithConnectivity(conn),
		gridpath.WithHeuristic(h),
		gridpath.WithMaxExpansions(c.MaxExpansions),
	}, nil
}

// NewCanvas builds a canvas of the configured size with the configured search
// options and every obstacle pre-drawn.
func (c Config) NewCanvas(opts ...canvas.Option) (*canvas.Canvas, error) {
	searchOpts, err := c.SearchOptions()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	opts = append(opts, canvas.WithSearchOptions(searchOpts...))
	cv, err := canvas.New(c.Width, c.Height, opts...)
	if err != nil {
		return nil, err
	}
	for _, s := range c.Obstacles {
		if err := cv.AddObstacle(canvas.Segment{From: s.From.Coord(), To: s.To.Coord()}); err != nil {
			return nil, err
		}
	}

	return cv, nil
}
