// Package render draws a canvas session as a text map or a PNG image.
package render

import (
	"bufio"
	"errors"
	"io"

	"github.com/muesli/termenv"

	"github.com/katalvlaran/sketchpath/canvas"
	"github.com/katalvlaran/sketchpath/gridpath"
)

// Map symbols.
const (
	Free    = '.'
	Blocked = '#'
	Step    = '*'
	Start   = 'S'
	Goal    = 'G'
)

// ErrBadScale indicates a non-positive PNG cell size.
var ErrBadScale = errors.New("render: scale must be positive")

// Option configures ASCII output.
type Option func(*asciiOptions)

type asciiOptions struct {
	profile termenv.Profile
}

// WithProfile colors symbols for the given terminal profile.
// termenv.Ascii (the default) writes plain text.
func WithProfile(p termenv.Profile) Option {
	return func(o *asciiOptions) {
		o.profile = p
	}
}

var palette = map[rune]string{
	Blocked: "#6b7280",
	Step:    "#f472b6",
	Start:   "#34d399",
	Goal:    "#60a5fa",
}

// ASCII writes walkable as one line per row (walkable[y][x]), then overlays
// every route: '*' for steps, 'S' and 'G' for the endpoints.
// Route cells outside the matrix are ignored.
func ASCII(w io.Writer, walkable [][]bool, routes []canvas.Route, opts ...Option) error {
	o := asciiOptions{profile: termenv.Ascii}
	for _, fn := range opts {
		fn(&o)
	}

	rows := make([][]rune, len(walkable))
	for y, row := range walkable {
		rows[y] = make([]rune, len(row))
		for x, ok := range row {
			if ok {
				rows[y][x] = Free
			} else {
				rows[y][x] = Blocked
			}
		}
	}
	mark := func(c gridpath.Coord, r rune) {
		if c.Y >= 0 && c.Y < len(rows) && c.X >= 0 && c.X < len(rows[c.Y]) {
			rows[c.Y][c.X] = r
		}
	}
	for _, rt := range routes {
		for _, c := range rt.Path {
			mark(c, Step)
		}
		mark(rt.Start, Start)
		mark(rt.Goal, Goal)
	}

	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for _, r := range row {
			if _, err := bw.WriteString(o.paint(r)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func (o asciiOptions) paint(r rune) string {
	hex, ok := palette[r]
	if !ok || o.profile == termenv.Ascii {
		return string(r)
	}

	return o.profile.String(string(r)).Foreground(o.profile.Color(hex)).String()
}
