package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/descent/pkg/domain"
	"github.com/muesli/termenv"
)

// Marker redraws the current waypoint on a single terminal line.
type Marker struct {
	w     io.Writer
	total int
	rich  bool
	out   *termenv.Output
}

// NewMarker creates a marker for a path of total points. With rich output the
// line is rewritten in place; otherwise each frame gets its own line.
func NewMarker(w io.Writer, total int, rich bool) *Marker {
	return &Marker{w: w, total: total, rich: rich, out: termenv.NewOutput(w)}
}

// Move shows waypoint i.
func (m *Marker) Move(i int, p domain.Waypoint) {
	line := fmt.Sprintf("frame %d/%d  x=%.5f  y=%.5f  z=%.5f", i, m.total-1, p.X, p.Y, p.Z)
	if !m.rich {
		fmt.Fprintln(m.w, line)
		return
	}
	m.out.ClearLine()
	fmt.Fprint(m.w, "\r"+line)
}

// Done ends the in-place line.
func (m *Marker) Done() {
	if m.rich {
		fmt.Fprintln(m.w)
	}
}
