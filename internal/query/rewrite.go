package query

import (
	"strings"
	"unicode"
)

// aliases maps user-friendly field names to the catalog's search keywords.
var aliases = map[string]string{
	"author":    "inauthor",
	"title":     "intitle",
	"publisher": "inpublisher",
}

// Rewrite replaces known field shorthands (author:, title:, publisher:) with
// the catalog keywords in place. Everything else, spacing included, is
// returned exactly as typed.
func Rewrite(input string) string {
	if isBlank(input) {
		return ""
	}

	src := []rune(input)
	var b strings.Builder
	last := 0
	for _, tok := range Tokens(input) {
		if tok.Type != TokenField {
			continue
		}
		kw, ok := aliases[strings.ToLower(tok.Value)]
		if !ok {
			continue
		}
		// "x:author:y" остаётся как есть: поле должно начинать слово
		if tok.Pos > 0 && !unicode.IsSpace(src[tok.Pos-1]) {
			continue
		}
		b.WriteString(string(src[last:tok.Pos]))
		b.WriteString(kw)
		last = tok.Pos + len([]rune(tok.Value))
	}
	b.WriteString(string(src[last:]))
	return b.String()
}
