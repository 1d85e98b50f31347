package search

import (
	"strings"

	"github.com/hammamikhairi/petitsplats/internal/domain"
	"github.com/hammamikhairi/petitsplats/internal/logger"
)

// Option configures a Searcher.
type Option func(*Searcher)

// WithMode selects word-boundary or substring matching.
func WithMode(mode Mode) Option {
	return func(s *Searcher) {
		s.matcher.mode = mode
	}
}

// WithQuotedPhrases makes double-quoted spans single tokens.
func WithQuotedPhrases(on bool) Option {
	return func(s *Searcher) {
		s.tokenizer.QuotedPhrases = on
	}
}

// WithInvariantEndings sets the endings treated as already plural.
func WithInvariantEndings(endings ...string) Option {
	return func(s *Searcher) {
		s.matcher.norm = NewNormalizer(endings...)
	}
}

// Searcher runs full-text queries over a recipe list.
type Searcher struct {
	tokenizer Tokenizer
	matcher   *Matcher
	log       *logger.Logger
}

// NewSearcher creates a searcher. Defaults: word matching, whitespace-only
// tokenizing, plain singular/plural rule.
func NewSearcher(log *logger.Logger, opts ...Option) *Searcher {
	s := &Searcher{
		matcher: NewMatcher(ModeWord, NewNormalizer()),
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Matcher returns the matcher used for every token.
func (s *Searcher) Matcher() *Matcher { return s.matcher }

// Tokenizer returns the query tokenizer.
func (s *Searcher) Tokenizer() Tokenizer { return s.tokenizer }

// Run returns, in input order, the recipes matching every token of query.
// The result is never nil so callers can tell "no match" from "no search".
func (s *Searcher) Run(recipes []*domain.Recipe, query string) []*domain.Recipe {
	var terms []Term
	for tok := range s.tokenizer.Tokens(strings.ToLower(query)) {
		terms = append(terms, s.matcher.Compile(tok))
	}

	out := make([]*domain.Recipe, 0)
	for _, r := range recipes {
		if matchAll(r, terms) {
			out = append(out, r)
		}
	}

	s.log.Debug("search %q: %d tokens, %d/%d recipes (mode=%s)", query, len(terms), len(out), len(recipes), s.matcher.mode)
	return out
}

func matchAll(r *domain.Recipe, terms []Term) bool {
	for _, t := range terms {
		if !t.Match(r) {
			return false
		}
	}
	return true
}
