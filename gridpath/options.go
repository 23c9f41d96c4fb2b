package gridpath

import (
	"context"
	"fmt"
)

// Option configures an Engine via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation by
// ResolveOptions and NewEngine.
type Option func(*Options)

// Options holds the tunable parameters of a search.
type Options struct {
	// Ctx allows cancellation or timeouts; checked before every expansion.
	// Defaults to context.Background().
	Ctx context.Context

	// Conn selects 4- or 8-directional movement. Default Conn4.
	Conn Connectivity

	// Heuristic selects the metric for H. Default Euclidean.
	Heuristic Heuristic

	// OnExpand, if non-nil, is called each time a cell is closed.
	// Returning an error aborts the search with that error wrapped.
	OnExpand func(c Coord) error

	// MaxExpansions, if non-negative, bounds the number of closed cells.
	// Default -1 (no limit).
	MaxExpansions int

	err error
}

// DefaultOptions returns Background context, Conn4, Euclidean, no hook and no
// expansion limit.
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		Conn:          Conn4,
		Heuristic:     Euclidean,
		MaxExpansions: -1,
	}
}

// ResolveOptions applies opts over DefaultOptions and reports the first
// invalid option as ErrOptionViolation.
func ResolveOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.err != nil {
		return Options{}, o.err
	}

	return o, nil
}

// WithContext sets the context checked before every expansion.
// A nil ctx keeps Background.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithConnectivity selects Conn4 or Conn8 movement.
func WithConnectivity(c Connectivity) Option {
	return func(o *Options) {
		if c != Conn4 && c != Conn8 {
			o.err = fmt.Errorf("%w: connectivity %d", ErrOptionViolation, int(c))
			return
		}
		o.Conn = c
	}
}

// WithHeuristic selects the distance metric used for H.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		if _, ok := heuristicNames[h]; !ok {
			o.err = fmt.Errorf("%w: heuristic %d", ErrOptionViolation, int(h))
			return
		}
		o.Heuristic = h
	}
}

// WithOnExpand installs a hook invoked whenever a cell is closed.
func WithOnExpand(fn func(c Coord) error) Option {
	return func(o *Options) {
		o.OnExpand = fn
	}
}

// WithMaxExpansions bounds the number of closed cells; n < 0 disables the limit.
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		o.MaxExpansions = n
	}
}
