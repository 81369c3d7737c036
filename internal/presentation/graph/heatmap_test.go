package graph

import (
	"math"
	"strings"
	"testing"

	"github.com/aretw0/descent/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatmap(t *testing.T) {
	g := &domain.Grid{
		Z: [][]float64{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{9, 9, math.NaN(), 9},
			{9, 9, 9, 9},
		},
	}
	out := Heatmap(g, 4)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	// top line is the highest y row
	assert.Equal(t, "@@?@", lines[0])
	assert.Equal(t, "    ", lines[1])
}

func TestHeatmap_Empty(t *testing.T) {
	assert.Empty(t, Heatmap(nil, 10))
	assert.Empty(t, Heatmap(&domain.Grid{}, 10))
}

func TestHeatmap_Downsamples(t *testing.T) {
	z := make([][]float64, 80)
	for i := range z {
		z[i] = make([]float64, 80)
	}
	out := Heatmap(&domain.Grid{Z: z}, 40)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 20)
	assert.Len(t, lines[0], 40)
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "█▄▁", Sparkline([]float64{2, 1, 0}))
	assert.Equal(t, "▁ ▁", Sparkline([]float64{5, math.NaN(), 5}))
	assert.Empty(t, Sparkline(nil))
}
