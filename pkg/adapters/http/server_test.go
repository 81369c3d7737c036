package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/descent"
	"github.com/aretw0/descent/pkg/adapters/memory"
	"github.com/aretw0/descent/pkg/domain"
	"github.com/aretw0/descent/pkg/observability"
	"github.com/aretw0/descent/pkg/session"
	"github.com/aretw0/descent/pkg/tracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bowl = `x^2+y^2`

func newTestHandler(t *testing.T, opts ...Option) (http.Handler, *session.Manager) {
	t.Helper()
	budget := tracer.DefaultOptions()
	budget.MaxSteps = 5
	engine := descent.New(descent.WithTracerOptions(budget))
	manager := session.NewManager(memory.NewStore())
	return NewHandler(engine, manager, opts...), manager
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthAndInfo(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/info", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"app":"descent-http"`)
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestHandler(t)
	w := do(t, h, http.MethodOptions, "/translate", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestTranslate(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/translate", ExpressionRequest{Markup: `\frac{x^2+y^2}{2}`})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ExpressionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "(x^2+y^2)/(2)", resp.Expression)
	assert.False(t, resp.NumericGradient)
	assert.NotEmpty(t, resp.GradientX)
}

func TestTranslate_Errors(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"Parse Failure", `{"markup":"x+"}`},
		{"Undefined Symbol", `{"markup":"x+z"}`},
		{"Malformed Body", `{"markup":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestEvaluate(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/evaluate", ExpressionRequest{Markup: bowl, X: 1, Y: 2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"x":1,"y":2,"z":5,"gradient_x":2,"gradient_y":4}`, w.Body.String())

	w = do(t, h, http.MethodPost, "/evaluate", ExpressionRequest{Markup: `\ln{x}`, X: 0, Y: 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"z":null`)
}

func TestSurface(t *testing.T) {
	h, _ := newTestHandler(t)

	ranges := domain.Ranges{XMin: -1, XMax: 1, YMin: -1, YMax: 1, ZMin: 0, ZMax: 2}
	w := do(t, h, http.MethodPost, "/surface", ExpressionRequest{Markup: bowl, Ranges: &ranges})
	require.Equal(t, http.StatusOK, w.Code)

	var resp SurfaceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Grid)
	assert.Len(t, resp.Grid.X, domain.GridResolution)
	assert.Len(t, resp.Grid.Z, domain.GridResolution)
	assert.InDelta(t, 2.0, resp.Grid.Z[0][0], 1e-9)

	bad := domain.Ranges{XMin: 1, XMax: -1, YMin: -1, YMax: 1, ZMin: 0, ZMax: 2}
	w = do(t, h, http.MethodPost, "/surface", ExpressionRequest{Markup: bowl, Ranges: &bad})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTraceLifecycle(t *testing.T) {
	h, _ := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/traces", TraceRequest{Markup: bowl, Start: &domain.Point{X: 1, Y: 1}})
	require.Equal(t, http.StatusCreated, w.Code)

	var created domain.Trace
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "/traces/"+created.ID, w.Header().Get("Location"))
	assert.Len(t, created.Waypoints, 5)
	assert.Equal(t, domain.ModeDescend, created.Mode)

	w = do(t, h, http.MethodGet, "/traces", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ids":["`+created.ID+`"]}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/traces/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var loaded domain.Trace
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loaded))
	assert.Equal(t, created.Waypoints, loaded.Waypoints)

	w = do(t, h, http.MethodDelete, "/traces/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/traces/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodDelete, "/traces/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, h, http.MethodGet, "/traces", nil)
	assert.JSONEq(t, `{"ids":[]}`, w.Body.String())
}

func TestCreateTrace_PathTooShort(t *testing.T) {
	h, manager := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/traces", TraceRequest{Markup: bowl, Start: &domain.Point{X: 0, Y: 0}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	ids, err := manager.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids, "too-short traces are not stored")
}

func TestCreateTrace_MissingStart(t *testing.T) {
	h, manager := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/traces", map[string]any{"markup": bowl})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "start is required")

	w = do(t, h, http.MethodPost, "/traces", map[string]any{"markup": bowl, "start": nil})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	ids, err := manager.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestPlayTrace(t *testing.T) {
	h, manager := newTestHandler(t)

	trace := &domain.Trace{
		Reason: domain.ReasonFlatGradient,
		Waypoints: []domain.Waypoint{
			{X: 1, Y: 1, Z: 2},
			{X: 0.5, Y: 0.5, Z: 0.5},
			{X: 0, Y: 0, Z: 0},
		},
	}
	require.NoError(t, manager.Create(context.Background(), trace))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/traces/"+trace.ID+"/play?fps=120", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "event: ping\ndata: connected\n\n"))
	assert.Contains(t, body, `data: {"index":0,"x":1,"y":1,"z":2}`)
	assert.Contains(t, body, `data: {"index":2,"x":0,"y":0,"z":0}`)
	assert.True(t, strings.HasSuffix(body, "event: done\ndata: flat_gradient\n\n"))
}

func TestPlayTrace_Errors(t *testing.T) {
	h, manager := newTestHandler(t)

	short := &domain.Trace{Waypoints: []domain.Waypoint{{X: 0, Y: 0, Z: 0}}}
	require.NoError(t, manager.Create(context.Background(), short))

	tests := []struct {
		name string
		path string
		code int
	}{
		{"Unknown Trace", "/traces/missing/play", http.StatusNotFound},
		{"Bad FPS", "/traces/missing/play?fps=7", http.StatusBadRequest},
		{"Non Numeric FPS", "/traces/missing/play?fps=fast", http.StatusBadRequest},
		{"Too Short", "/traces/" + short.ID + "/play", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics := observability.NewMetrics()
	engine := descent.New(descent.WithLifecycleHooks(metrics.Hooks(nil)))
	h := NewHandler(engine, session.NewManager(memory.NewStore()), WithMetrics(metrics.Handler()))

	do(t, h, http.MethodPost, "/translate", ExpressionRequest{Markup: bowl})

	w := do(t, h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "descent_compiles_total")
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	h, _ := newTestHandler(t)
	w := do(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
