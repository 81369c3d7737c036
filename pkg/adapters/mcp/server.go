package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/descent"
	"github.com/aretw0/descent/internal/logging"
	"github.com/aretw0/descent/pkg/config"
	"github.com/aretw0/descent/pkg/domain"
	"github.com/aretw0/descent/pkg/field"
	"github.com/aretw0/descent/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TraceURIPrefix prefixes the resource URI of a stored trace.
const TraceURIPrefix = "descent://traces/"

// Engine defines the interface required by the MCP server.
type Engine interface {
	Compile(ctx context.Context, markup string) (*field.Snapshot, error)
	Trace(ctx context.Context, snap *field.Snapshot, start domain.Point, mode domain.Mode) (*domain.Trace, error)
	Evaluate(snap *field.Snapshot, x, y float64) domain.Sample
}

// ExpressionResult aligns with the HTTP adapter's translate response.
type ExpressionResult struct {
	Expression      string `json:"expression" jsonschema_description:"Flat infix form of the markup"`
	GradientX       string `json:"gradient_x,omitempty" jsonschema_description:"Symbolic partial derivative in x"`
	GradientY       string `json:"gradient_y,omitempty" jsonschema_description:"Symbolic partial derivative in y"`
	NumericGradient bool   `json:"numeric_gradient" jsonschema_description:"True when the gradient is approximated by central differences"`
	Advisory        string `json:"advisory,omitempty" jsonschema_description:"Advisory shown for the degraded gradient mode"`
}

// TraceResult is the outcome of trace_path.
type TraceResult struct {
	ID        string            `json:"id,omitempty" jsonschema_description:"Identifier of the stored trace"`
	Status    domain.Status     `json:"status" jsonschema_description:"success or insufficient_path"`
	Reason    domain.Reason     `json:"reason" jsonschema_description:"Why the walk stopped"`
	Steps     int               `json:"steps"`
	Waypoints []domain.Waypoint `json:"waypoints"`
	Message   string            `json:"message,omitempty"`
}

type expressionArgs struct {
	Markup string `mapstructure:"markup"`
}

type pointArgs struct {
	Markup string  `mapstructure:"markup"`
	X      float64 `mapstructure:"x"`
	Y      float64 `mapstructure:"y"`
	Ascend bool    `mapstructure:"ascend"`
}

// Server wraps the descent Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	traces    *session.Manager
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithTraces stores every successful trace_path result and exposes stored
// traces as resources.
func WithTraces(m *session.Manager) Option {
	return func(s *Server) { s.traces = m }
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("descent-mcp", strings.TrimSpace(descent.Version), server.WithToolCapabilities(true)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer exposes the underlying server, mainly for tests.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: translate_expression
	translateTool := mcp.NewTool("translate_expression",
		mcp.WithDescription("Translate LaTeX markup of a two-variable field into a flat expression and its gradient."),
		mcp.WithString("markup", mcp.Required(), mcp.Description(`Typeset expression, e.g. \frac{x^2+y^2}{2}`)),
		mcp.WithOutputSchema[ExpressionResult](),
	)
	s.mcpServer.AddTool(translateTool, mcp.NewStructuredToolHandler(s.handleTranslate))

	// TOOL: evaluate_point
	evaluateTool := mcp.NewTool("evaluate_point",
		mcp.WithDescription("Evaluate the field and its gradient at a point. Undefined values are null."),
		mcp.WithString("markup", mcp.Required(), mcp.Description("Typeset expression")),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("x coordinate")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("y coordinate")),
	)
	s.mcpServer.AddTool(evaluateTool, s.handleEvaluate)

	// TOOL: trace_path
	traceTool := mcp.NewTool("trace_path",
		mcp.WithDescription("Walk the gradient from a start point with fixed steps and return the waypoints."),
		mcp.WithString("markup", mcp.Required(), mcp.Description("Typeset expression")),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Start x coordinate")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Start y coordinate")),
		mcp.WithBoolean("ascend", mcp.Description("Climb instead of descend")),
		mcp.WithOutputSchema[TraceResult](),
	)
	s.mcpServer.AddTool(traceTool, mcp.NewStructuredToolHandler(s.handleTrace))
}

// Handler methods for structured tools

func (s *Server) handleTranslate(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ExpressionResult, error) {
	var in expressionArgs
	if err := config.Decode(args, &in); err != nil {
		return ExpressionResult{}, err
	}
	snap, err := s.engine.Compile(ctx, in.Markup)
	if err != nil {
		s.logger.Warn("MCP translate: compile failed", "error", err)
		return ExpressionResult{}, err
	}
	return ExpressionResult{
		Expression:      snap.Expression,
		GradientX:       snap.GradientX,
		GradientY:       snap.GradientY,
		NumericGradient: snap.NumericGradient(),
		Advisory:        snap.Advisory(),
	}, nil
}

// handleEvaluate returns plain JSON text since the sample encodes gaps as null.
func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in pointArgs
	if err := config.Decode(request.GetArguments(), &in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	snap, err := s.engine.Compile(ctx, in.Markup)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jsonBytes, err := json.Marshal(s.engine.Evaluate(snap, in.X, in.Y))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleTrace(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (TraceResult, error) {
	var in pointArgs
	if err := config.Decode(args, &in); err != nil {
		return TraceResult{}, err
	}
	snap, err := s.engine.Compile(ctx, in.Markup)
	if err != nil {
		return TraceResult{}, err
	}

	trace, err := s.engine.Trace(ctx, snap, domain.Point{X: in.X, Y: in.Y}, domain.ModeOf(in.Ascend))
	if errors.Is(err, domain.ErrPathTooShort) {
		return TraceResult{
			Status:    trace.Status(),
			Reason:    trace.Reason,
			Steps:     trace.Steps,
			Waypoints: trace.Waypoints,
			Message:   "Cannot calculate path from this start point (gradient may be zero).",
		}, nil
	}
	if err != nil {
		return TraceResult{}, err
	}

	if s.traces != nil {
		if err := s.traces.Create(ctx, trace); err != nil {
			s.logger.Error("MCP trace: save failed", "error", err)
			return TraceResult{}, fmt.Errorf("save failed: %w", err)
		}
	}
	return TraceResult{
		ID:        trace.ID,
		Status:    trace.Status(),
		Reason:    trace.Reason,
		Steps:     trace.Steps,
		Waypoints: trace.Waypoints,
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: descent://settings
	s.mcpServer.AddResource(mcp.NewResource("descent://settings", "Default Settings",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(config.Default())
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "descent://settings",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	if s.traces == nil {
		return
	}

	// EXPOSE: descent://traces/{id}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(TraceURIPrefix+"{id}", "Stored Trace",
		mcp.WithTemplateMIMEType("application/json"),
	), s.readTrace)
}

func (s *Server) readTrace(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	trace, err := s.traces.Load(ctx, strings.TrimPrefix(uri, TraceURIPrefix))
	if err != nil {
		return nil, fmt.Errorf("failed to load trace: %w", err)
	}
	jsonBytes, err := json.Marshal(trace)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
