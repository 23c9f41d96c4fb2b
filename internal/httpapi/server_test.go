package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/sketchpath/canvas"
	"github.com/katalvlaran/sketchpath/gridpath"
	"github.com/katalvlaran/sketchpath/internal/httpapi"
	"github.com/katalvlaran/sketchpath/metrics"
)

type xy = gridpath.Coord

type ServerSuite struct {
	suite.Suite
	canvas  *canvas.Canvas
	handler http.Handler
}

func (s *ServerSuite) SetupTest() {
	reg := prometheus.NewRegistry()
	col, err := metrics.New(reg)
	s.Require().NoError(err)
	c, err := canvas.New(7, 5, canvas.WithObserver(col))
	s.Require().NoError(err)
	s.canvas = c
	s.handler = httpapi.NewHandler(c, httpapi.WithGatherer(reg), httpapi.WithScale(4))
}

func (s *ServerSuite) do(method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *ServerSuite) route(start, goal xy) canvas.Route {
	w := s.do(http.MethodPost, "/routes", httpapi.RouteRequest{Start: start, Goal: goal})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var r canvas.Route
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &r))
	return r
}

func (s *ServerSuite) TestHealthz() {
	w := s.do(http.MethodGet, "/healthz", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("ok\n", w.Body.String())
}

func (s *ServerSuite) TestObstacles() {
	w := s.do(http.MethodGet, "/obstacles", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())

	w = s.do(http.MethodPost, "/obstacles", canvas.Segment{From: xy{X: 3, Y: 0}, To: xy{X: 3, Y: 3}})
	s.Equal(http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/obstacles", canvas.Segment{From: xy{X: 3, Y: 0}, To: xy{X: 9, Y: 3}})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "out of bounds")

	w = s.do(http.MethodPost, "/obstacles", map[string]int{"width": 3})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/obstacles", nil)
	s.JSONEq(`[{"from":{"x":3,"y":0},"to":{"x":3,"y":3}}]`, w.Body.String())
}

func (s *ServerSuite) TestRoutes() {
	first := s.route(xy{X: 0, Y: 2}, xy{X: 6, Y: 2})
	s.True(first.Found)
	s.True(first.Accepted)
	s.Equal(1, first.ID)
	s.Len(first.Path, 6)

	across := s.route(xy{X: 3, Y: 0}, xy{X: 3, Y: 4})
	s.False(across.Found)
	s.NotNil(across.Path)
	s.Empty(across.Path)

	w := s.do(http.MethodPost, "/routes", httpapi.RouteRequest{Start: xy{X: 0, Y: 0}, Goal: xy{X: 7, Y: 0}})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "goal coordinate out of bounds")

	w = s.do(http.MethodGet, "/routes", nil)
	var routes []canvas.Route
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &routes))
	s.Len(routes, 1)
}

func (s *ServerSuite) TestConnected() {
	get := func(q string) (int, string) {
		w := s.do(http.MethodGet, "/connected?"+q, nil)
		return w.Code, w.Body.String()
	}
	code, body := get("from=0,0&to=6,4")
	s.Equal(http.StatusOK, code)
	s.JSONEq(`{"connected":true}`, body)

	s.route(xy{X: 0, Y: 2}, xy{X: 6, Y: 2})
	_, body = get("from=0,0&to=6,4")
	s.JSONEq(`{"connected":false}`, body)

	// The end of an accepted route is a valid start, as on POST /routes.
	_, body = get("from=6,2&to=6,4")
	s.JSONEq(`{"connected":true}`, body)
	s.True(s.route(xy{X: 6, Y: 2}, xy{X: 6, Y: 4}).Found)

	code, _ = get("from=0;0&to=6,4")
	s.Equal(http.StatusBadRequest, code)
	code, _ = get("from=0,0&to=6,x")
	s.Equal(http.StatusBadRequest, code)
	code, _ = get("from=0,0&to=60,4")
	s.Equal(http.StatusBadRequest, code)
}

func (s *ServerSuite) TestReset() {
	s.route(xy{X: 0, Y: 0}, xy{X: 6, Y: 4})
	w := s.do(http.MethodDelete, "/canvas", nil)
	s.Equal(http.StatusNoContent, w.Code)
	s.Empty(s.canvas.Routes())
	s.JSONEq(`[]`, s.do(http.MethodGet, "/routes", nil).Body.String())
}

func (s *ServerSuite) TestCanvasText() {
	s.Require().NoError(s.canvas.AddObstacle(canvas.Segment{From: xy{X: 3, Y: 0}, To: xy{X: 3, Y: 3}}))
	w := s.do(http.MethodGet, "/canvas.txt", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("...#...\n...#...\n...#...\n...#...\n.......\n", w.Body.String())
}

func (s *ServerSuite) TestCanvasPNG() {
	w := s.do(http.MethodGet, "/canvas.png", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("image/png", w.Header().Get("Content-Type"))
	img, err := png.Decode(w.Body)
	s.Require().NoError(err)
	s.Equal(28, img.Bounds().Dx())
	s.Equal(20, img.Bounds().Dy())

	w = s.do(http.MethodGet, "/canvas.png?scale=2", nil)
	img, err = png.Decode(w.Body)
	s.Require().NoError(err)
	s.Equal(14, img.Bounds().Dx())

	for _, q := range []string{"0", "x", "65"} {
		w = s.do(http.MethodGet, "/canvas.png?scale="+q, nil)
		s.Equal(http.StatusBadRequest, w.Code, q)
	}
}

func (s *ServerSuite) TestMetrics() {
	s.route(xy{X: 0, Y: 0}, xy{X: 6, Y: 4})
	w := s.do(http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `sketchpath_routes_total{outcome="found"} 1`)
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func TestNoMetricsWithoutGatherer(t *testing.T) {
	c, err := canvas.New(3, 3)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	httpapi.NewHandler(c).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExpansionLimit(t *testing.T) {
	c, err := canvas.New(4, 4, canvas.WithSearchOptions(gridpath.WithMaxExpansions(0)))
	require.NoError(t, err)
	body := strings.NewReader(`{"start":{"x":0,"y":0},"goal":{"x":3,"y":3}}`)
	w := httptest.NewRecorder()
	httpapi.NewHandler(c).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/routes", body))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "expansion limit")
}

func TestRouteCanceled(t *testing.T) {
	c, err := canvas.New(4, 4)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body := strings.NewReader(`{"start":{"x":0,"y":0},"goal":{"x":3,"y":3}}`)
	req := httptest.NewRequest(http.MethodPost, "/routes", body).WithContext(ctx)
	w := httptest.NewRecorder()
	httpapi.NewHandler(c).ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "canceled")
	assert.Empty(t, c.Routes())
}
