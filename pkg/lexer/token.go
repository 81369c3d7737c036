package lexer

import (
	"strings"
	"unicode/utf8"
)

// Kind classifies a token.
type Kind int

const (
	Ident Kind = iota
	Number
	Op
)

func (k Kind) String() string {
	switch k {
	case Ident:
		return "ident"
	case Number:
		return "number"
	default:
		return "op"
	}
}

// Token is one lexeme of a flat expression.
type Token struct {
	Kind Kind
	Text string
	Pos  int // byte offset in the source string
}

func (t Token) String() string { return t.Kind.String() + "(" + t.Text + ")" }

func (t Token) is(text string) bool { return t.Kind == Op && t.Text == text }

// Tokenize splits s into identifiers ([A-Za-z_]\w*), numbers (digits with an optional
// fractional part) and single-character operators. Whitespace is skipped.
func Tokenize(s string) []Token {
	var toks []Token
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case isSpace(c):
			i++
		case isIdentStart(c):
			j := i + 1
			for j < len(s) && isWord(s[j]) {
				j++
			}
			toks = append(toks, Token{Kind: Ident, Text: s[i:j], Pos: i})
			i = j
		case isDigit(c) || (c == '.' && i+1 < len(s) && isDigit(s[i+1])):
			j := scanNumber(s, i)
			toks = append(toks, Token{Kind: Number, Text: s[i:j], Pos: i})
			i = j
		default:
			_, size := utf8.DecodeRuneInString(s[i:])
			toks = append(toks, Token{Kind: Op, Text: s[i : i+size], Pos: i})
			i += size
		}
	}
	return toks
}

func scanNumber(s string, i int) int {
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	if j+1 < len(s) && s[j] == '.' && isDigit(s[j+1]) {
		j++
		for j < len(s) && isDigit(s[j]) {
			j++
		}
	}
	return j
}

// Join concatenates token texts without separators.
func Join(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
	}
	return b.String()
}

func isSpace(c byte) bool      { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool      { return '0' <= c && c <= '9' }
func isLetter(c byte) bool     { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }
func isIdentStart(c byte) bool { return isLetter(c) || c == '_' }
func isWord(c byte) bool       { return isIdentStart(c) || isDigit(c) }
