package lexer

// Normalize rewrites a flat expression so that every product is explicit.
func Normalize(s string) string {
	toks := Tokenize(s)
	toks = splitIdents(toks)
	toks = explicitExponents(toks)
	toks = insertProducts(toks)
	toks = collapseProducts(toks)
	return Join(toks)
}

// splitIdents breaks identifiers that are not reserved names into single letters.
// Inside a merged identifier reserved names are matched longest-first, so "xsin"
// becomes x, sin and "pir" becomes pi, r. Digit runs become numbers and an
// underscore keeps the rest of the word as one identifier.
func splitIdents(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.Kind != Ident || len(t.Text) == 1 || IsReserved(t.Text) {
			out = append(out, t)
			continue
		}
		s := t.Text
		for i := 0; i < len(s); {
			if name := longestReserved(s[i:]); name != "" {
				out = append(out, Token{Kind: Ident, Text: name, Pos: t.Pos + i})
				i += len(name)
				continue
			}
			switch c := s[i]; {
			case isDigit(c):
				j := i + 1
				for j < len(s) && isDigit(s[j]) {
					j++
				}
				out = append(out, Token{Kind: Number, Text: s[i:j], Pos: t.Pos + i})
				i = j
			case isLetter(c):
				out = append(out, Token{Kind: Ident, Text: s[i : i+1], Pos: t.Pos + i})
				i++
			default:
				// "_" starts an identifier that runs to the end of the word, as Tokenize reads it.
				out = append(out, Token{Kind: Ident, Text: s[i:], Pos: t.Pos + i})
				i = len(s)
			}
		}
	}
	return out
}

// explicitExponents makes the end of every exponent operand explicit. The operand of
// "^" (after an optional sign) is exactly one atom: an identifier, a number, a
// parenthesized group or a function call. An identifier or group right after it
// starts a new factor.
func explicitExponents(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		out = append(out, toks[i])
		if !toks[i].is("^") {
			continue
		}
		j := i + 1
		if j < len(toks) && (toks[j].is("-") || toks[j].is("+")) {
			out = append(out, toks[j])
			j++
		}
		end := atomEnd(toks, j)
		out = append(out, toks[j:end]...)
		if end > j && end < len(toks) && (toks[end].Kind == Ident || toks[end].is("(")) {
			out = append(out, Token{Kind: Op, Text: "*"})
		}
		i = end - 1
	}
	return out
}

// atomEnd returns the index just past the atom starting at toks[j], or j if there is none.
func atomEnd(toks []Token, j int) int {
	if j >= len(toks) {
		return j
	}
	switch t := toks[j]; {
	case t.Kind == Ident && IsFunction(t.Text) && j+1 < len(toks) && toks[j+1].is("("):
		return matchParen(toks, j+1)
	case t.Kind == Ident || t.Kind == Number:
		return j + 1
	case t.is("("):
		return matchParen(toks, j)
	}
	return j
}

// matchParen returns the index just past the ")" matching toks[open].
func matchParen(toks []Token, open int) int {
	depth := 0
	for k := open; k < len(toks); k++ {
		switch {
		case toks[k].is("("):
			depth++
		case toks[k].is(")"):
			depth--
			if depth == 0 {
				return k + 1
			}
		}
	}
	return len(toks)
}

// insertProducts adds "*" between adjacent operands, except between a function name
// and the parenthesis that opens its call.
func insertProducts(toks []Token) []Token {
	out := make([]Token, 0, len(toks)*2)
	for i, t := range toks {
		if i > 0 {
			prev := toks[i-1]
			call := prev.Kind == Ident && IsFunction(prev.Text) && t.is("(")
			if endsOperand(prev) && startsOperand(t) && !call {
				out = append(out, Token{Kind: Op, Text: "*"})
			}
		}
		out = append(out, t)
	}
	return out
}

func endsOperand(t Token) bool {
	return t.Kind == Ident || t.Kind == Number || t.is(")")
}

func startsOperand(t Token) bool {
	return t.Kind == Ident || t.Kind == Number || t.is("(")
}

// collapseProducts merges runs of "*" and strips them from both ends.
func collapseProducts(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		if t.is("*") && (len(out) == 0 || out[len(out)-1].is("*")) {
			continue
		}
		out = append(out, t)
	}
	for len(out) > 0 && out[len(out)-1].is("*") {
		out = out[:len(out)-1]
	}
	return out
}
