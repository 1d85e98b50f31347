package search

import (
	"iter"
	"slices"
	"strings"
	"unicode"
)

// Tokenizer splits a query into search tokens on whitespace. With
// QuotedPhrases set, a double-quoted span is kept as a single token; an
// unterminated quote still emits what follows it.
type Tokenizer struct {
	QuotedPhrases bool
}

// Tokens yields the non-empty, trimmed tokens of query. The sequence is
// stateless and can be ranged over any number of times.
func (t Tokenizer) Tokens(query string) iter.Seq[string] {
	return func(yield func(string) bool) {
		var b strings.Builder
		inPhrase := false

		flush := func() bool {
			tok := strings.TrimSpace(b.String())
			b.Reset()
			if tok == "" {
				return true
			}
			return yield(tok)
		}

		for _, r := range query {
			switch {
			case t.QuotedPhrases && r == '"':
				if !flush() {
					return
				}
				inPhrase = !inPhrase
			case unicode.IsSpace(r) && !inPhrase:
				if !flush() {
					return
				}
			default:
				b.WriteRune(r)
			}
		}
		flush()
	}
}

// Split collects Tokens into a slice.
func (t Tokenizer) Split(query string) []string {
	return slices.Collect(t.Tokens(query))
}
