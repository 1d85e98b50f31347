// Package engine implements the filtering engine: one evaluation cycle turns
// a query and a facet selection into the visible recipes, the options still
// offered by each dropdown, the counter and the empty-result condition.
package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/hammamikhairi/petitsplats/internal/domain"
	"github.com/hammamikhairi/petitsplats/internal/facet"
	"github.com/hammamikhairi/petitsplats/internal/logger"
	"github.com/hammamikhairi/petitsplats/internal/search"
)

// DefaultMinQueryLength is the shortest query that engages text search.
const DefaultMinQueryLength = 3

// Option configures the engine.
type Option func(*Engine)

// WithMinQueryLength sets the number of characters, after trimming, a query
// needs before text search engages.
func WithMinQueryLength(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minQueryLength = n
		}
	}
}

// WithSearcher replaces the default full-text searcher.
func WithSearcher(s *search.Searcher) Option {
	return func(e *Engine) {
		e.searcher = s
	}
}

// SearchState is the outcome of the text-search half of a cycle. Active is
// false for the "no active search" state, which is distinct from an active
// search that matched nothing.
type SearchState struct {
	Query  string
	Active bool
	Main   []*domain.Recipe
}

// Inactive is the initial search state.
var Inactive = SearchState{}

// Result is everything a renderer needs after one cycle.
type Result struct {
	Search  SearchState
	Visible []*domain.Recipe
	Options facet.Options
	Count   domain.Count
	// Err is nil unless the visible list is empty for a reportable reason.
	Err *domain.EmptyResultError
}

// Engine evaluates searches and facet selections over a fixed catalog. It
// holds no per-session state and is safe for concurrent use.
type Engine struct {
	catalog        []*domain.Recipe
	searcher       *search.Searcher
	log            *logger.Logger
	minQueryLength int
}

// New creates an engine over the given catalog.
func New(catalog []*domain.Recipe, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		catalog:        catalog,
		log:            log,
		minQueryLength: DefaultMinQueryLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.searcher == nil {
		e.searcher = search.NewSearcher(log)
	}
	return e
}

// Catalog returns the recipes the engine filters.
func (e *Engine) Catalog() []*domain.Recipe {
	return e.catalog
}

// MinQueryLength returns the text-search threshold.
func (e *Engine) MinQueryLength() int {
	return e.minQueryLength
}

// Search runs the text-search half of a cycle. Queries shorter than the
// threshold leave search inactive.
func (e *Engine) Search(query string) SearchState {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < e.minQueryLength {
		return SearchState{Query: query}
	}
	return SearchState{
		Query:  query,
		Active: true,
		Main:   e.searcher.Run(e.catalog, q),
	}
}

// Evaluate runs the facet half of a cycle on top of a search state.
func (e *Engine) Evaluate(state SearchState, sel *facet.Selection) Result {
	visible := Visible(e.catalog, state, sel)
	res := Result{
		Search:  state,
		Visible: visible,
		Options: facet.Derive(visible),
		Count:   domain.Count{All: !state.Active && sel.Empty(), N: len(visible)},
	}

	switch {
	case state.Active && len(state.Main) == 0:
		res.Err = &domain.EmptyResultError{Kind: domain.EmptyTextSearch, Term: state.Query}
	case len(visible) == 0:
		if last, ok := sel.LastToggled(); ok {
			res.Err = &domain.EmptyResultError{Kind: domain.EmptyFacetCombination, Term: last}
		}
	}

	e.log.Debug("evaluate: query=%q active=%t facets=%d visible=%d/%d",
		state.Query, state.Active, sel.Len(), len(visible), len(e.catalog))
	return res
}

// Run is Search followed by Evaluate.
func (e *Engine) Run(query string, sel *facet.Selection) Result {
	return e.Evaluate(e.Search(query), sel)
}

// Visible returns, in base order, the recipes passing every facet
// selection. The base is the catalog when search is inactive and the search
// matches otherwise. Ingredient and utensil values must be present in the
// recipe; every selected appliance must equal the recipe's appliance.
func Visible(catalog []*domain.Recipe, state SearchState, sel *facet.Selection) []*domain.Recipe {
	base := catalog
	if state.Active {
		base = state.Main
	}

	ingredients := sel.Values(domain.DimensionIngredient)
	appliances := sel.Values(domain.DimensionAppliance)
	utensils := sel.Values(domain.DimensionUtensil)

	out := make([]*domain.Recipe, 0, len(base))
	for _, r := range base {
		if hasAll(ingredientNames(r), ingredients) &&
			allEqual(r.Appliance, appliances) &&
			hasAll(r.Utensils, utensils) {
			out = append(out, r)
		}
	}
	return out
}

func ingredientNames(r *domain.Recipe) []string {
	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = ing.Ingredient
	}
	return names
}

// hasAll reports whether every wanted value (already lower-cased) equals,
// ignoring case, one of the recipe values.
func hasAll(values, wanted []string) bool {
	for _, w := range wanted {
		found := false
		for _, v := range values {
			if strings.ToLower(strings.TrimSpace(v)) == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func allEqual(value string, wanted []string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, w := range wanted {
		if v != w {
			return false
		}
	}
	return true
}
