// Package translate maps calculator keys to the text they insert into the
// expression buffer.
package translate

import "sort"

// Memory keys. They operate on the memory register and are handled by the
// session instead of being translated.
const (
	MemoryClear    = "MC"
	MemoryRecall   = "MR"
	MemoryAdd      = "M+"
	MemorySubtract = "M-"
)

var fragments = map[string]string{
	"sin":   "sin(",
	"cos":   "cos(",
	"tan":   "tan(",
	"sinh":  "sinh(",
	"cosh":  "cosh(",
	"tanh":  "tanh(",
	"sin⁻¹": "asin(",
	"cos⁻¹": "acos(",
	"tan⁻¹": "atan(",
	"log":   "log10(",
	"ln":    "log(",
	"√":     "sqrt(",
	"x²":    "^2",
	"xʸ":    "^",
	"10ˣ":   "10^",
	"x!":    "!",
	"π":     "pi",
	"e":     "e",
	"×":     "*",
	"÷":     "/",
	"%":     "%",
}

// Translate returns the fragment that the given key appends to the buffer.
// Keys without an entry, such as digits, the decimal point, + and - and
// parentheses, insert themselves.
func Translate(token string) string {
	if fragment, ok := fragments[token]; ok {
		return fragment
	}
	return token
}

// IsMemory reports whether token is one of the memory keys.
func IsMemory(token string) bool {
	switch token {
	case MemoryClear, MemoryRecall, MemoryAdd, MemorySubtract:
		return true
	}
	return false
}

// Tokens returns the keys that have a translation, sorted.
func Tokens() []string {
	tokens := make([]string, 0, len(fragments))
	for token := range fragments {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}
