package conversation

import (
	"strings"
	"sync"

	"github.com/hammamikhairi/petitsplats/internal/display"
	"github.com/hammamikhairi/petitsplats/internal/domain"
	"github.com/hammamikhairi/petitsplats/internal/logger"
)

// Compile-time interface check.
var _ domain.Renderer = (*TextRenderer)(nil)

// ANSI escape codes for terminal formatting.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	red    = "\033[31m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

// PrintFunc is a function used to print one formatted line.
// Matches the signature of display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

// TextRenderer writes every evaluation cycle as plain lines with ANSI
// colors, for terminals where the full-screen UI is unwanted.
type TextRenderer struct {
	log      *logger.Logger
	printFn  PrintFunc
	total    int
	maxCards int

	mu sync.Mutex
}

// NewTextRenderer creates a line renderer. total is the counter value when
// no filter is active; maxCards caps the listed recipes (0 lists all).
func NewTextRenderer(log *logger.Logger, printFn PrintFunc, total, maxCards int) *TextRenderer {
	return &TextRenderer{log: log, printFn: printFn, total: total, maxCards: maxCards}
}

// RenderRecipes lists the visible recipes.
func (r *TextRenderer) RenderRecipes(recipes []*domain.Recipe) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rec := range recipes {
		if r.maxCards > 0 && i == r.maxCards {
			r.printFn("  … et %d autres", len(recipes)-r.maxCards)
			return
		}
		r.printFn("%s  • %s%s", cyan, display.RecipeLine(rec), reset)
	}
}

// RenderCount prints the counter.
func (r *TextRenderer) RenderCount(count domain.Count) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.printFn("%s%s%s", bold, display.CountLabel(count, r.total), reset)
}

// RenderFacetOptions prints the active selections of a dimension. The
// offerable values are only listed on demand with ":options".
func (r *TextRenderer) RenderFacetOptions(d domain.Dimension, options, selected []string) {
	if len(selected) == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log.Debug("%s: %d options, %d selected", d, len(options), len(selected))
	r.printFn("%s%s: %s%s", yellow, display.DimensionTitle(d), strings.Join(selected, ", "), reset)
}

// RenderError prints the banner in red. Nil prints nothing.
func (r *TextRenderer) RenderError(err *domain.EmptyResultError) {
	if err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.printFn("%s%s%s%s", red, bold, display.ErrorBanner(err), reset)
}
