package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	toks := Tokenize("2.5x + sin(y_1)")
	assert.Equal(t, []Token{
		{Kind: Number, Text: "2.5", Pos: 0},
		{Kind: Ident, Text: "x", Pos: 3},
		{Kind: Op, Text: "+", Pos: 5},
		{Kind: Ident, Text: "sin", Pos: 7},
		{Kind: Op, Text: "(", Pos: 10},
		{Kind: Ident, Text: "y_1", Pos: 11},
		{Kind: Op, Text: ")", Pos: 14},
	}, toks)
}

func TestTokenize_Numbers(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{".5", []string{".5"}},
		{"10", []string{"10"}},
		{"3.", []string{"3", "."}},
		{"1.2.3", []string{"1.2", ".3"}},
		{"2,3", []string{"2", ",", "3"}},
	}
	for _, tt := range tests {
		var got []string
		for _, tok := range Tokenize(tt.input) {
			got = append(got, tok.Text)
		}
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestTokenize_NonASCIIOperator(t *testing.T) {
	toks := Tokenize("x·y")
	assert.Len(t, toks, 3)
	assert.Equal(t, "·", toks[1].Text)
	assert.Equal(t, Op, toks[1].Kind)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "sin(x)+1", Join(Tokenize("sin( x ) + 1")))
	assert.Equal(t, "", Join(nil))
}
