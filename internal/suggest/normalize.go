package suggest

import (
	"strings"
	"unicode"
)

// Normalize folds an identifier for fuzzy comparison: CamelCase words and
// separated words are joined and lower-cased, so "ZipCode", "zip_code" and
// "zip-code" all become "zipcode".
func Normalize(s string) string {
	return strings.Join(Tokens(s), "")
}

// Tokens splits an identifier into lower-case words.
//   - "zip_code" -> ["zip", "code"]
//   - "brandName" -> ["brand", "name"]
//   - "HTTPStatus" -> ["http", "status"]
func Tokens(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, strings.ToLower(current.String()))
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsWord reports whether runes[i] begins a new CamelCase word.
func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	// End of an acronym: "XMLParser" splits before 'P'.
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
