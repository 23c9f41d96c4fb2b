package metrics

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sketchpath/canvas"
	"github.com/katalvlaran/sketchpath/gridpath"
)

func TestCollector_Outcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)

	c.ObserveRoute(canvas.Route{Found: true, Accepted: true, Path: make([]gridpath.Coord, 4), Expanded: 5}, time.Millisecond, nil)
	c.ObserveRoute(canvas.Route{Found: false, Expanded: 12}, time.Millisecond, nil)
	c.ObserveRoute(canvas.Route{}, time.Microsecond, errors.New("bad request"))
	c.ObserveRoute(canvas.Route{}, time.Microsecond, fmt.Errorf("canvas: %w", gridpath.ErrExpansionLimit))
	c.ObserveRoute(canvas.Route{}, time.Microsecond, context.Canceled)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.routes.WithLabelValues(OutcomeFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.routes.WithLabelValues(OutcomeNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.routes.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.routes.WithLabelValues(OutcomeAborted)))

	expected := `
# HELP sketchpath_path_steps Steps in accepted routes.
# TYPE sketchpath_path_steps histogram
sketchpath_path_steps_bucket{le="1"} 0
sketchpath_path_steps_bucket{le="2"} 0
sketchpath_path_steps_bucket{le="4"} 1
sketchpath_path_steps_bucket{le="8"} 1
sketchpath_path_steps_bucket{le="16"} 1
sketchpath_path_steps_bucket{le="32"} 1
sketchpath_path_steps_bucket{le="64"} 1
sketchpath_path_steps_bucket{le="128"} 1
sketchpath_path_steps_bucket{le="256"} 1
sketchpath_path_steps_bucket{le="512"} 1
sketchpath_path_steps_bucket{le="1024"} 1
sketchpath_path_steps_bucket{le="2048"} 1
sketchpath_path_steps_bucket{le="+Inf"} 1
sketchpath_path_steps_sum 4
sketchpath_path_steps_count 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "sketchpath_path_steps"))
	assert.Equal(t, 5, testutil.CollectAndCount(c.routes)+testutil.CollectAndCount(c.duration))
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}

func TestCollector_WithCanvas(t *testing.T) {
	reg := prometheus.NewRegistry()
	col, err := New(reg)
	require.NoError(t, err)
	c, err := canvas.New(4, 4, canvas.WithObserver(col))
	require.NoError(t, err)

	_, err = c.Route(gridpath.Coord{X: 0, Y: 0}, gridpath.Coord{X: 3, Y: 3})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(col.routes.WithLabelValues(OutcomeFound)))
}
