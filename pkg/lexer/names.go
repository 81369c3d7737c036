package lexer

var functions = map[string]bool{
	"sin":  true,
	"cos":  true,
	"tan":  true,
	"exp":  true,
	"log":  true,
	"sqrt": true,
	"sinh": true,
	"cosh": true,
	"tanh": true,
	"asin": true,
	"acos": true,
	"atan": true,
	"abs":  true,
}

var constants = map[string]bool{
	"pi": true,
}

const longestName = 4

// IsFunction reports whether name is a recognized function.
func IsFunction(name string) bool { return functions[name] }

// IsReserved reports whether name is a function or a named constant. Reserved names
// are never split into single-letter variables.
func IsReserved(name string) bool { return functions[name] || constants[name] }

// longestReserved returns the longest reserved name that prefixes s.
func longestReserved(s string) string {
	for n := min(longestName, len(s)); n >= 2; n-- {
		if IsReserved(s[:n]) {
			return s[:n]
		}
	}
	return ""
}
