package latex

import "strings"

// commands maps recognized command words to their plain-text form.
// frac, sqrt, left and right are structural and handled by the translator itself.
var commands = map[string]string{
	"sin":   "sin",
	"cos":   "cos",
	"tan":   "tan",
	"exp":   "exp",
	"ln":    "log",
	"log":   "log",
	"pi":    "pi",
	"cdot":  "*",
	"times": "*",
	"sinh":  "sinh",
	"cosh":  "cosh",
	"tanh":  "tanh",
	"asin":  "asin",
	"acos":  "acos",
	"atan":  "atan",
	"abs":   "abs",
}

// IsCommand reports whether word is part of the recognized command subset.
func IsCommand(word string) bool {
	switch word {
	case "frac", "sqrt", "left", "right":
		return true
	}
	_, ok := commands[word]
	return ok
}

// translator is a single recursive-descent pass over one markup string.
type translator struct {
	src string
	pos int
	out strings.Builder
}

// Translate converts typeset markup into a flat expression string.
// It never fails: unknown commands and malformed groups are emitted literally.
func Translate(markup string) string {
	t := &translator{src: markup}
	t.out.Grow(len(markup))
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		switch {
		case c == '\\':
			t.escape()
		case c == '{' || c == '(':
			content, next := ReadGroup(t.src, t.pos)
			t.group(content)
			t.pos = next
		case isSpace(c):
			t.pos++
		default:
			t.out.WriteByte(c)
			t.pos++
		}
	}
	return t.out.String()
}

func (t *translator) escape() {
	start := t.pos + 1
	end := start
	for end < len(t.src) && isLetter(t.src[end]) {
		end++
	}
	if end == start {
		t.symbol(start)
		return
	}

	word := t.src[start:end]
	t.pos = end
	switch word {
	case "frac":
		t.frac()
	case "sqrt":
		t.sqrt()
	case "left", "right":
		// grouping hints only
	default:
		if plain, ok := commands[word]; ok {
			t.out.WriteString(plain)
		} else {
			t.out.WriteString(word)
		}
	}
}

// symbol handles an escape followed by a non-letter at src[i].
func (t *translator) symbol(i int) {
	if i >= len(t.src) {
		t.out.WriteByte('\\')
		t.pos = i
		return
	}
	switch c := t.src[i]; c {
	case ',', ';', ':', '!', ' ':
		// spacing
	case '{':
		t.out.WriteByte('(')
	case '}':
		t.out.WriteByte(')')
	default:
		t.out.WriteByte(c)
	}
	t.pos = i + 1
}

func (t *translator) frac() {
	t.skipSpace()
	num, next := ReadGroup(t.src, t.pos)
	if next == t.pos {
		t.out.WriteString("frac")
		return
	}
	t.pos = next

	t.skipSpace()
	den, next := ReadGroup(t.src, t.pos)
	t.pos = next

	t.out.WriteByte('(')
	t.out.WriteString(Translate(num))
	t.out.WriteString(")/(")
	t.out.WriteString(Translate(den))
	t.out.WriteByte(')')
}

func (t *translator) sqrt() {
	t.skipSpace()
	arg, next := ReadGroup(t.src, t.pos)
	if next == t.pos {
		t.out.WriteString("sqrt")
		return
	}
	t.pos = next
	t.out.WriteString("sqrt(")
	t.group(arg)
	t.out.WriteByte(')')
}

func (t *translator) group(content string) {
	t.out.WriteByte('(')
	t.out.WriteString(Translate(content))
	t.out.WriteByte(')')
}

func (t *translator) skipSpace() {
	for t.pos < len(t.src) && isSpace(t.src[t.pos]) {
		t.pos++
	}
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
