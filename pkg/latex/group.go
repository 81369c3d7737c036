package latex

var closers = map[byte]byte{
	'{': '}',
	'(': ')',
}

// ReadGroup returns the text strictly between the opening delimiter at s[i] and its
// matching closer, plus the index just past the closer.
//
// Only delimiters of the same type are counted for nesting; escaped delimiters
// (`\{`, `\}`) are skipped. If s[i] is not an opening delimiter ReadGroup returns
// ("", i). An unterminated group runs to the end of s.
func ReadGroup(s string, i int) (string, int) {
	if i < 0 || i >= len(s) {
		return "", i
	}
	open := s[i]
	closer, ok := closers[open]
	if !ok {
		return "", i
	}

	depth := 1
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[i+1 : j], j + 1
			}
		}
	}
	return s[i+1:], len(s)
}
