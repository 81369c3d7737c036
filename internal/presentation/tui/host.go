package tui

import (
	"fmt"
	"io"
	"sync"

	"github.com/aretw0/descent/internal/presentation/graph"
	"github.com/aretw0/descent/pkg/domain"
)

// Host draws session output on a terminal. It implements ports.Renderer and
// is safe for use from the frame loop goroutine.
type Host struct {
	mu      sync.Mutex
	w       io.Writer
	width   int
	rich    bool
	opacity float64

	path   []domain.Waypoint
	cursor int
	marker *Marker
}

// NewHost creates a terminal host that draws surfaces width columns wide.
func NewHost(w io.Writer, width int, rich bool) *Host {
	return &Host{w: w, width: width, rich: rich}
}

func (h *Host) DrawSurface(g *domain.Grid, opacity float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opacity = opacity
	fmt.Fprint(h.w, graph.Heatmap(g, h.width))
	fmt.Fprintf(h.w, "x [%g, %g]  y [%g, %g]  opacity %.2f\n", g.Ranges.XMin, g.Ranges.XMax, g.Ranges.YMin, g.Ranges.YMax, opacity)
}

func (h *Host) SetOpacity(opacity float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.opacity = opacity
	fmt.Fprintf(h.w, "opacity %.2f\n", opacity)
}

func (h *Host) DrawPath(path []domain.Waypoint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.path = path
	h.cursor = 0
	first, last := path[0], path[len(path)-1]
	fmt.Fprintf(h.w, "path: %d points, (%.4f, %.4f) -> (%.4f, %.4f)\n", len(path), first.X, first.Y, last.X, last.Y)
	h.marker = NewMarker(h.w, len(path), h.rich)
}

// MoveMarker finds w on the drawn path, searching forward from the last
// position since frames only advance.
func (h *Host) MoveMarker(w domain.Waypoint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.marker == nil {
		return
	}
	for i := h.cursor; i < len(h.path); i++ {
		if h.path[i] == w {
			h.cursor = i
			break
		}
	}
	h.marker.Move(h.cursor, w)
}

func (h *Host) ClearPath() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.endMarker()
	h.path = nil
	h.cursor = 0
}

func (h *Host) ShowMessage(msg string) {
	if msg == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.endMarker()
	Advisory(h.w, msg)
}

// SetControlsEnabled ends the marker line once playback finishes.
func (h *Host) SetControlsEnabled(enabled bool) {
	if !enabled {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.endMarker()
}

func (h *Host) endMarker() {
	if h.marker != nil {
		h.marker.Done()
		h.marker = nil
	}
}
