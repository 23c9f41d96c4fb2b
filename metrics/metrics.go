// Package metrics exposes route-search statistics as Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/sketchpath/canvas"
	"github.com/katalvlaran/sketchpath/gridpath"
)

const namespace = "sketchpath"

// Outcome label values for sketchpath_routes_total. Aborted covers expansion
// limits and canceled searches.
const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeAborted  = "aborted"
)

// Collector records the outcome of every canvas Route call. It implements canvas.Observer.
type Collector struct {
	routes     *prometheus.CounterVec
	expanded   prometheus.Histogram
	pathLength prometheus.Histogram
	duration   prometheus.Histogram
}

var _ canvas.Observer = (*Collector)(nil)

// New builds a Collector and registers it on reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		routes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routes_total",
			Help:      "Route requests by outcome.",
		}, []string{"outcome"}),
		expanded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "expanded_cells",
			Help:      "Cells closed per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		pathLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_steps",
			Help:      "Steps in accepted routes.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall time of a route request, rasterization included.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	for _, col := range []prometheus.Collector{c.routes, c.expanded, c.pathLength, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ObserveRoute implements canvas.Observer.
func (c *Collector) ObserveRoute(r canvas.Route, elapsed time.Duration, err error) {
	c.duration.Observe(elapsed.Seconds())
	switch {
	case errors.Is(err, gridpath.ErrExpansionLimit),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		c.routes.WithLabelValues(OutcomeAborted).Inc()
		return
	case err != nil:
		c.routes.WithLabelValues(OutcomeInvalid).Inc()
		return
	case r.Found:
		c.routes.WithLabelValues(OutcomeFound).Inc()
	default:
		c.routes.WithLabelValues(OutcomeNotFound).Inc()
	}
	c.expanded.Observe(float64(r.Expanded))
	if r.Accepted {
		c.pathLength.Observe(float64(len(r.Path)))
	}
}
