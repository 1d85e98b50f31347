// Package search implements the free-text half of recipe filtering:
// tokenizing the query, deriving singular/plural spellings, and matching
// tokens against a recipe's name, description and ingredients.
package search

import "strings"

// Forms is the pair of spellings a token is searched under.
type Forms struct {
	Singular string
	Plural   string
}

// Normalizer derives singular/plural forms with the trailing-"s" heuristic.
// There is no dictionary and no irregular plural handling.
type Normalizer struct {
	invariant []string
}

// NewNormalizer returns a normalizer. Tokens ending with one of the
// invariant endings (for example "x" or "z") are treated as already plural
// and left unchanged.
func NewNormalizer(invariantEndings ...string) Normalizer {
	var ends []string
	for _, e := range invariantEndings {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			ends = append(ends, e)
		}
	}
	return Normalizer{invariant: ends}
}

// Forms returns the singular and plural spellings of a lower-cased,
// non-empty token.
func (n Normalizer) Forms(token string) Forms {
	for _, end := range n.invariant {
		if strings.HasSuffix(token, end) {
			return Forms{Singular: token, Plural: token}
		}
	}
	return SingularAndPlural(token)
}

// SingularAndPlural applies the plain rule: a trailing "s" marks the
// plural, otherwise the plural gets one.
func SingularAndPlural(token string) Forms {
	if strings.HasSuffix(token, "s") {
		return Forms{Singular: strings.TrimSuffix(token, "s"), Plural: token}
	}
	return Forms{Singular: token, Plural: token + "s"}
}

// distinct returns the non-empty forms without duplicates.
func (f Forms) distinct() []string {
	out := make([]string, 0, 2)
	if f.Singular != "" {
		out = append(out, f.Singular)
	}
	if f.Plural != "" && f.Plural != f.Singular {
		out = append(out, f.Plural)
	}
	return out
}
