package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeMarkup_SizeLimit(t *testing.T) {
	limit := DefaultMaxInputSize

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeMarkup(strings.Repeat("x", tt.inputSize))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeMarkup_EnvOverride(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "8")

	_, err := SanitizeMarkup("x^2+y^2")
	assert.NoError(t, err)
	_, err = SanitizeMarkup(`\frac{x}{y}`)
	assert.ErrorIs(t, err, ErrInputTooLarge)
}

func TestSanitizeMarkup_ControlChars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Clean", `\sin\left(x\right)`, `\sin\left(x\right)`},
		{"Keeps Whitespace", "x^2\n+\ty^2", "x^2\n+\ty^2"},
		{"Strips ANSI Escape", "x\x1b[31m+y", "x[31m+y"},
		{"Strips NUL and BEL", "x\x00+\x07y", "x+y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeMarkup(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeMarkup_InvalidUTF8(t *testing.T) {
	_, err := SanitizeMarkup("x\xff")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}
