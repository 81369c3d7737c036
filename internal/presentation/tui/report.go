package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/aretw0/descent/internal/presentation/graph"
	"github.com/aretw0/descent/pkg/domain"
	"github.com/aretw0/descent/pkg/field"
)

// maxRows bounds the waypoint table; longer paths are thinned evenly.
const maxRows = 12

// TraceReport formats a finished trace as markdown.
func TraceReport(snap *field.Snapshot, t *domain.Trace) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Gradient %s\n\n", t.Mode)
	fmt.Fprintf(&sb, "- **Field:** `%s`\n", snap.Expression)
	if snap.NumericGradient() {
		sb.WriteString("- **Gradient:** numeric (central difference)\n")
	} else {
		fmt.Fprintf(&sb, "- **Gradient:** (`%s`, `%s`)\n", snap.GradientX, snap.GradientY)
	}
	fmt.Fprintf(&sb, "- **Start:** (%g, %g)\n", t.Start.X, t.Start.Y)
	fmt.Fprintf(&sb, "- **Steps:** %d, **points:** %d\n", t.Steps, len(t.Waypoints))
	fmt.Fprintf(&sb, "- **Stopped:** %s (%s)\n\n", t.Reason, t.Status())

	if len(t.Waypoints) == 0 {
		return sb.String()
	}

	z := make([]float64, len(t.Waypoints))
	for i, w := range t.Waypoints {
		z[i] = w.Z
	}
	fmt.Fprintf(&sb, "Height: `%s`\n\n", graph.Sparkline(thin(z, 60)))

	sb.WriteString("| # | x | y | z |\n|---:|---:|---:|---:|\n")
	for _, i := range rowIndices(len(t.Waypoints)) {
		w := t.Waypoints[i]
		fmt.Fprintf(&sb, "| %d | %.6g | %.6g | %.6g |\n", i, w.X, w.Y, w.Z)
	}
	return sb.String()
}

// SurfaceReport formats a sampled surface as markdown with a text heatmap.
func SurfaceReport(snap *field.Snapshot, g *domain.Grid, width int) string {
	gaps := 0
	for _, row := range g.Z {
		for _, v := range row {
			if math.IsNaN(v) {
				gaps++
			}
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Surface `%s`\n\n", snap.Expression)
	fmt.Fprintf(&sb, "x ∈ [%g, %g], y ∈ [%g, %g], %d×%d samples, %d undefined\n\n",
		g.Ranges.XMin, g.Ranges.XMax, g.Ranges.YMin, g.Ranges.YMax, len(g.X), len(g.Y), gaps)
	sb.WriteString("```\n")
	sb.WriteString(graph.Heatmap(g, width))
	sb.WriteString("```\n")
	return sb.String()
}

func rowIndices(n int) []int {
	if n <= maxRows {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, maxRows)
	for k := range idx {
		idx[k] = k * (n - 1) / (maxRows - 1)
	}
	return idx
}

func thin(v []float64, n int) []float64 {
	if len(v) <= n {
		return v
	}
	out := make([]float64, n)
	for k := range out {
		out[k] = v[k*(len(v)-1)/(n-1)]
	}
	return out
}
