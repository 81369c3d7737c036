package graph

import (
	"math"
	"strings"

	"github.com/aretw0/descent/pkg/domain"
)

// shades run from low to high.
const shades = " .:-=+*#%@"

// gap marks an undefined cell.
const gap = '?'

var blocks = []rune("▁▂▃▄▅▆▇█")

// Heatmap renders a grid as shaded text, highest y on top. Each output column
// covers one or more grid columns so that the map fits in width characters.
// Heights are normalized to the finite min/max of the grid.
func Heatmap(g *domain.Grid, width int) string {
	if g == nil || len(g.Z) == 0 || len(g.Z[0]) == 0 {
		return ""
	}
	cols := len(g.Z[0])
	if width <= 0 || width > cols {
		width = cols
	}
	// terminal cells are about twice as tall as wide
	rows := max(1, len(g.Z)*width/cols/2)

	lo, hi := bounds(g.Z)
	var sb strings.Builder
	for r := rows - 1; r >= 0; r-- {
		i := r * len(g.Z) / rows
		for c := 0; c < width; c++ {
			j := c * cols / width
			sb.WriteByte(shade(g.Z[i][j], lo, hi))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Sparkline renders values as a single line of block characters.
// Non-finite values are rendered as spaces.
func Sparkline(values []float64) string {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if finite(v) {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	var sb strings.Builder
	for _, v := range values {
		if !finite(v) {
			sb.WriteRune(' ')
			continue
		}
		k := 0
		if hi > lo {
			k = int((v - lo) / (hi - lo) * float64(len(blocks)-1))
		}
		sb.WriteRune(blocks[k])
	}
	return sb.String()
}

func shade(v, lo, hi float64) byte {
	if !finite(v) {
		return gap
	}
	if hi <= lo {
		return shades[0]
	}
	k := int((v - lo) / (hi - lo) * float64(len(shades)-1))
	return shades[k]
}

func bounds(z [][]float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range z {
		for _, v := range row {
			if finite(v) {
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
		}
	}
	return lo, hi
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
