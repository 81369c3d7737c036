package tui

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/aretw0/descent/pkg/domain"
	"github.com/aretw0/descent/pkg/ports"
	"github.com/stretchr/testify/assert"
)

var _ ports.Renderer = (*Host)(nil)

func TestHost_DrawSurface(t *testing.T) {
	var buf bytes.Buffer
	h := NewHost(&buf, 10, false)

	g := &domain.Grid{
		X:      []float64{0, 1},
		Y:      []float64{0, 1},
		Z:      [][]float64{{math.NaN(), 1}, {0, 2}},
		Ranges: domain.Ranges{XMin: 0, XMax: 1, YMin: 0, YMax: 1, ZMin: 0, ZMax: 2},
	}
	h.DrawSurface(g, 0.8)
	assert.Contains(t, buf.String(), "?")
	assert.Contains(t, buf.String(), "opacity 0.80")
}

func TestHost_PathPlayback(t *testing.T) {
	var buf bytes.Buffer
	h := NewHost(&buf, 10, false)
	path := []domain.Waypoint{{X: 1, Y: 1, Z: 2}, {X: 0.5, Y: 0.5, Z: 0.5}, {X: 0, Y: 0, Z: 0}}

	h.SetControlsEnabled(false)
	h.DrawPath(path)
	h.MoveMarker(path[0])
	h.MoveMarker(path[2])
	h.SetControlsEnabled(true)
	h.MoveMarker(path[1])

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"path: 3 points, (1.0000, 1.0000) -> (0.0000, 0.0000)",
		"frame 0/2  x=1.00000  y=1.00000  z=2.00000",
		"frame 2/2  x=0.00000  y=0.00000  z=0.00000",
	}, lines, "moves after playback ended are dropped")
}

func TestHost_ShowMessage(t *testing.T) {
	var buf bytes.Buffer
	h := NewHost(&buf, 10, false)

	h.ShowMessage("")
	assert.Empty(t, buf.String())

	h.ShowMessage("Using numeric gradient.")
	assert.Contains(t, buf.String(), "Using numeric gradient.")
}
