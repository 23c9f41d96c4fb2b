// Package httpapi serves a canvas session over HTTP.
//
// POST /routes holds the canvas write lock while it searches, so every other
// endpoint waits for it. A client that disconnects cancels its search (503).
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/sketchpath/canvas"
	"github.com/katalvlaran/sketchpath/gridpath"
	"github.com/katalvlaran/sketchpath/internal/logging"
	"github.com/katalvlaran/sketchpath/render"
)

// Server exposes one Canvas.
type Server struct {
	canvas   *canvas.Canvas
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	scale    int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithGatherer serves GET /metrics from g. Without it /metrics is not mounted.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithScale sets the default PNG cell size.
func WithScale(px int) Option {
	return func(s *Server) {
		if px > 0 {
			s.scale = px
		}
	}
}

// NewHandler builds the chi router for c.
func NewHandler(c *canvas.Canvas, opts ...Option) http.Handler {
	s := &Server{canvas: c, logger: logging.NewNop(), scale: 10}
	for _, fn := range opts {
		fn(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/obstacles", s.listObstacles)
	r.Post("/obstacles", s.addObstacle)
	r.Get("/routes", s.listRoutes)
	r.Post("/routes", s.addRoute)
	r.Get("/connected", s.connected)
	r.Delete("/canvas", s.reset)
	r.Get("/canvas.txt", s.text)
	r.Get("/canvas.png", s.png)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		began := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(began),
		)
	})
}

// RouteRequest is the body of POST /routes.
type RouteRequest struct {
	Start gridpath.Coord `json:"start"`
	Goal  gridpath.Coord `json:"goal"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorBody{Error: err.Error()})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gridpath.ErrStartOutOfBounds),
		errors.Is(err, gridpath.ErrGoalOutOfBounds),
		errors.Is(err, gridpath.ErrOutOfBounds),
		errors.Is(err, canvas.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, gridpath.ErrExpansionLimit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	return nil
}

func (s *Server) listObstacles(w http.ResponseWriter, _ *http.Request) {
	obstacles := s.canvas.Obstacles()
	if obstacles == nil {
		obstacles = []canvas.Segment{}
	}
	s.writeJSON(w, http.StatusOK, obstacles)
}

func (s *Server) addObstacle(w http.ResponseWriter, r *http.Request) {
	var seg canvas.Segment
	if err := decode(r, &seg); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.canvas.AddObstacle(seg); err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusCreated, seg)
}

func (s *Server) listRoutes(w http.ResponseWriter, _ *http.Request) {
	routes := s.canvas.Routes()
	if routes == nil {
		routes = []canvas.Route{}
	}
	s.writeJSON(w, http.StatusOK, routes)
}

func (s *Server) addRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	route, err := s.canvas.RouteContext(r.Context(), req.Start, req.Goal)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, route)
}

// connected answers GET /connected?from=x,y&to=x,y. Like POST /routes it
// treats from as free, so it answers whether that route would be found.
func (s *Server) connected(w http.ResponseWriter, r *http.Request) {
	from, err := gridpath.ParseCoord(r.URL.Query().Get("from"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	to, err := gridpath.ParseCoord(r.URL.Query().Get("to"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	ok, err := s.canvas.Connected(from, to)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"connected": ok})
}

func (s *Server) reset(w http.ResponseWriter, _ *http.Request) {
	s.canvas.Reset()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) text(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := render.ASCII(w, s.canvas.Walkability(), s.canvas.Routes()); err != nil {
		s.logger.Error("text render failed", "error", err)
	}
}

const maxScale = 64

// png serves the canvas image; ?scale=N overrides the default cell size.
func (s *Server) png(w http.ResponseWriter, r *http.Request) {
	scale := s.scale
	if q := r.URL.Query().Get("scale"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("scale %q: %w", q, err))
			return
		}
		scale = n
	}
	if scale <= 0 || scale > maxScale {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %d (max %d)", render.ErrBadScale, scale, maxScale))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.PNG(w, s.canvas, scale); err != nil {
		s.logger.Error("png encode failed", "error", err)
	}
}
