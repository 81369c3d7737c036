package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/descent"
	"github.com/aretw0/descent/internal/logging"
	"github.com/aretw0/descent/pkg/animation"
	"github.com/aretw0/descent/pkg/config"
	"github.com/aretw0/descent/pkg/domain"
	"github.com/aretw0/descent/pkg/field"
	"github.com/aretw0/descent/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Engine is the part of the descent facade the server needs.
type Engine interface {
	Compile(ctx context.Context, markup string) (*field.Snapshot, error)
	Surface(ctx context.Context, snap *field.Snapshot, ranges domain.Ranges) (*domain.Grid, error)
	Trace(ctx context.Context, snap *field.Snapshot, start domain.Point, mode domain.Mode) (*domain.Trace, error)
	Evaluate(snap *field.Snapshot, x, y float64) domain.Sample
}

// Server holds the handlers of the JSON API.
type Server struct {
	Engine   Engine
	Traces   *session.Manager
	Settings config.Settings

	metrics  http.Handler
	logger   *slog.Logger
	loopOpts []animation.LoopOption
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics exposes h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithSettings sets the defaults used when a request omits ranges or fps.
func WithSettings(settings config.Settings) Option {
	return func(s *Server) { s.Settings = settings }
}

// WithLoopOptions tunes the frame loop used for playback streams.
func WithLoopOptions(opts ...animation.LoopOption) Option {
	return func(s *Server) { s.loopOpts = opts }
}

// NewHandler creates the HTTP handler for engine, storing traces through traces.
func NewHandler(engine Engine, traces *session.Manager, opts ...Option) http.Handler {
	s := &Server{
		Engine:   engine,
		Traces:   traces,
		Settings: config.Default(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/translate", s.Translate)
	r.Post("/evaluate", s.Evaluate)
	r.Post("/surface", s.Surface)
	r.Route("/traces", func(r chi.Router) {
		r.Post("/", s.CreateTrace)
		r.Get("/", s.ListTraces)
		r.Get("/{id}", s.GetTrace)
		r.Delete("/{id}", s.DeleteTrace)
		r.Get("/{id}/play", s.PlayTrace)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ExpressionRequest is the body shared by the expression endpoints.
type ExpressionRequest struct {
	Markup string         `json:"markup"`
	X      float64        `json:"x,omitempty"`
	Y      float64        `json:"y,omitempty"`
	Ranges *domain.Ranges `json:"ranges,omitempty"`
}

// TraceRequest is the body of POST /traces.
type TraceRequest struct {
	Markup string        `json:"markup"`
	Start  *domain.Point `json:"start"`
	Ascend bool          `json:"ascend"`
}

// ExpressionResponse describes a compiled field.
type ExpressionResponse struct {
	Markup          string `json:"markup"`
	Expression      string `json:"expression"`
	GradientX       string `json:"gradient_x,omitempty"`
	GradientY       string `json:"gradient_y,omitempty"`
	NumericGradient bool   `json:"numeric_gradient"`
	Advisory        string `json:"advisory,omitempty"`
}

// SurfaceResponse carries a sampled grid.
type SurfaceResponse struct {
	ExpressionResponse
	Grid *domain.Grid `json:"grid"`
}

// Frame is one event of a playback stream.
type Frame struct {
	Index int `json:"index"`
	domain.Waypoint
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "descent-http",
		"version": strings.TrimSpace(descent.Version),
	})
}

// Translate handles the POST /translate request.
func (s *Server) Translate(w http.ResponseWriter, r *http.Request) {
	_, snap, ok := s.compile(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, describe(snap))
}

// Evaluate handles the POST /evaluate request.
func (s *Server) Evaluate(w http.ResponseWriter, r *http.Request) {
	body, snap, ok := s.compile(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, s.Engine.Evaluate(snap, body.X, body.Y))
}

// Surface handles the POST /surface request.
func (s *Server) Surface(w http.ResponseWriter, r *http.Request) {
	body, snap, ok := s.compile(w, r)
	if !ok {
		return
	}
	ranges := s.Settings.Ranges
	if body.Ranges != nil {
		ranges = *body.Ranges
	}
	grid, err := s.Engine.Surface(r.Context(), snap, ranges)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, SurfaceResponse{ExpressionResponse: describe(snap), Grid: grid})
}

// CreateTrace handles the POST /traces request.
func (s *Server) CreateTrace(w http.ResponseWriter, r *http.Request) {
	var body TraceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("CreateTrace: invalid request body", "error", err)
		s.writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrInvalidConfig))
		return
	}
	if body.Start == nil {
		s.writeError(w, fmt.Errorf("%w: start is required", domain.ErrInvalidStartPoint))
		return
	}

	snap, err := s.Engine.Compile(r.Context(), body.Markup)
	if err != nil {
		s.writeError(w, err)
		return
	}
	trace, err := s.Engine.Trace(r.Context(), snap, *body.Start, domain.ModeOf(body.Ascend))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.Traces.Create(r.Context(), trace); err != nil {
		s.logger.Error("CreateTrace: save failed", "error", err)
		s.writeError(w, err)
		return
	}

	w.Header().Set("Location", "/traces/"+trace.ID)
	s.writeJSON(w, http.StatusCreated, trace)
}

// ListTraces handles the GET /traces request.
func (s *Server) ListTraces(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Traces.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"ids": ids})
}

// GetTrace handles the GET /traces/{id} request.
func (s *Server) GetTrace(w http.ResponseWriter, r *http.Request) {
	trace, err := s.Traces.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, trace)
}

// DeleteTrace handles the DELETE /traces/{id} request.
func (s *Server) DeleteTrace(w http.ResponseWriter, r *http.Request) {
	if err := s.Traces.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PlayTrace handles the GET /traces/{id}/play request (SSE).
// Frames are paced by the animation scheduler at the requested fps; the trace
// is held locked so concurrent replays of the same ID do not interleave.
func (s *Server) PlayTrace(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("PlayTrace: streaming not supported")
		return
	}

	fps := s.Settings.FPS
	if raw := r.URL.Query().Get("fps"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, fmt.Errorf("%w: fps %q is not a number", domain.ErrInvalidConfig, raw))
			return
		}
		fps = n
	}
	if err := config.ValidateFPS(fps); err != nil {
		s.writeError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	ctx := r.Context()
	err := s.Traces.WithLock(ctx, id, func(ctx context.Context) error {
		trace, err := s.Traces.Store().Load(ctx, id)
		if err != nil {
			return err
		}
		if err := trace.Err(); err != nil {
			return err
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
		flusher.Flush()

		frames := make(chan int)
		result := make(chan error, 1)
		go func() {
			result <- animation.Play(ctx, animation.Playback{
				Frames: len(trace.Waypoints),
				FPS:    fps,
				OnFrame: func(i int) {
					select {
					case frames <- i:
					case <-ctx.Done():
					}
				},
			}, s.loopOpts...)
		}()

		for {
			select {
			case i := <-frames:
				data, err := json.Marshal(Frame{Index: i, Waypoint: trace.Waypoints[i]})
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "event: frame\ndata: %s\n\n", data)
				flusher.Flush()
			case err := <-result:
				if err != nil {
					s.logger.Info("PlayTrace: client disconnected", "trace_id", id)
					return nil
				}
				fmt.Fprintf(w, "event: done\ndata: %s\n\n", trace.Reason)
				flusher.Flush()
				return nil
			}
		}
	})
	if err != nil {
		s.writeError(w, err)
	}
}

func (s *Server) compile(w http.ResponseWriter, r *http.Request) (ExpressionRequest, *field.Snapshot, bool) {
	var body ExpressionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		s.writeError(w, fmt.Errorf("%w: invalid request body", domain.ErrInvalidConfig))
		return body, nil, false
	}
	snap, err := s.Engine.Compile(r.Context(), body.Markup)
	if err != nil {
		s.writeError(w, err)
		return body, nil, false
	}
	return body, snap, true
}

func describe(snap *field.Snapshot) ExpressionResponse {
	return ExpressionResponse{
		Markup:          snap.Markup,
		Expression:      snap.Expression,
		GradientX:       snap.GradientX,
		GradientY:       snap.GradientY,
		NumericGradient: snap.NumericGradient(),
		Advisory:        snap.Advisory(),
	}
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrParseFailure),
		errors.Is(err, domain.ErrInvalidStartPoint),
		errors.Is(err, domain.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPathTooShort):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrTraceNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}
