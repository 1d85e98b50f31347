package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrUnknownDimension = errors.New("unknown facet dimension")
	ErrInvalidCatalog   = errors.New("invalid catalog")
	ErrSessionClosed    = errors.New("search session is closed")
)

// EmptyKind tells why an evaluation produced no visible recipe.
type EmptyKind int

const (
	// EmptyTextSearch means the full-text search itself matched nothing.
	EmptyTextSearch EmptyKind = iota
	// EmptyFacetCombination means the facet selections filtered everything out.
	EmptyFacetCombination
)

// String returns a human-readable kind.
func (k EmptyKind) String() string {
	switch k {
	case EmptyTextSearch:
		return "empty_text_search"
	case EmptyFacetCombination:
		return "empty_facet_combination"
	default:
		return "unknown"
	}
}

// EmptyResultError is the user-facing "no recipe matches" condition. It is
// handed to Renderer.RenderError, not returned up the call stack.
type EmptyResultError struct {
	Kind EmptyKind
	Term string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no recipe contains %q (%s)", e.Term, e.Kind)
}
