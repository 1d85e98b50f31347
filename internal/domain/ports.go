package domain

import (
	"context"
	"time"
)

// CatalogSource provides the recipe catalog. Implementations can be the
// embedded data set, a JSON file, or anything else resident in memory.
type CatalogSource interface {
	All(ctx context.Context) ([]*Recipe, error)
	Get(ctx context.Context, id int) (*Recipe, error)
}

// Renderer receives the outcome of every evaluation cycle. It redraws, the
// engine never knows how. Implementations must be safe to call from the
// debounce goroutine.
type Renderer interface {
	RenderRecipes(recipes []*Recipe)
	RenderCount(count Count)
	RenderFacetOptions(dim Dimension, options []string, selected []string)
	// RenderError shows the "no recipe matches" banner; nil clears it.
	RenderError(err *EmptyResultError)
}

// Scheduler runs fn once after delay unless the returned cancel function is
// called first. Implementations can use real timers or be driven by tests.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}
