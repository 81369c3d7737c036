package latex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadGroup(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		index       int
		wantContent string
		wantNext    int
	}{
		{"Brace", "{ab}c", 0, "ab", 4},
		{"Paren", "(a+b)*c", 0, "a+b", 5},
		{"Nested Same Type", "{a{b}c}d", 0, "a{b}c", 7},
		{"Mixed Types Only Count Opener", "{a(b}c)", 0, "a(b", 5},
		{"Offset", "x^{2}", 2, "2", 5},
		{"Empty Group", "{}", 0, "", 2},
		{"Escaped Brace Skipped", `{a\}b}`, 0, `a\}b`, 6},
		{"Not An Opener", "abc", 1, "", 1},
		{"Out Of Range", "abc", 3, "", 3},
		{"Negative Index", "{a}", -1, "", -1},
		{"Unterminated Runs To End", "{ab", 0, "ab", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, next := ReadGroup(tt.input, tt.index)
			assert.Equal(t, tt.wantContent, content)
			assert.Equal(t, tt.wantNext, next)
		})
	}
}

func TestReadGroup_BalancedContentHasZeroDepth(t *testing.T) {
	inputs := []string{
		"{a}",
		"{{a}{b}}",
		"{x^{2}+\\frac{1}{y}}",
		"((a)(b(c)))",
		"({[]})",
	}
	for _, in := range inputs {
		content, next := ReadGroup(in, 0)
		open, closer := in[0], closers[in[0]]

		depth := 0
		for i := 0; i < len(content); i++ {
			switch content[i] {
			case open:
				depth++
			case closer:
				depth--
			}
		}
		assert.Zero(t, depth, "content %q of %q", content, in)
		assert.Equal(t, len(in), next, "closer of %q should be the last byte", in)
		assert.Equal(t, closer, in[next-1])
		assert.True(t, strings.HasPrefix(in[1:], content))
	}
}
