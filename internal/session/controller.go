// Package session implements the search session controller. It owns the
// query, the facet selection and the debounce timer of one user session,
// and pushes the outcome of every evaluation cycle to a Renderer.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/petitsplats/internal/domain"
	"github.com/hammamikhairi/petitsplats/internal/engine"
	"github.com/hammamikhairi/petitsplats/internal/facet"
	"github.com/hammamikhairi/petitsplats/internal/logger"
	"github.com/hammamikhairi/petitsplats/internal/timer"
)

// DefaultDebounce is the delay between the last keystroke and evaluation.
const DefaultDebounce = 500 * time.Millisecond

// State tells whether an evaluation is waiting on the debounce timer.
type State int

const (
	StateIdle State = iota
	StatePending
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	default:
		return "unknown"
	}
}

// Option configures the controller.
type Option func(*Controller)

// WithDebounce sets the debounce delay for Input.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithScheduler replaces the wall-clock scheduler.
func WithScheduler(s domain.Scheduler) Option {
	return func(c *Controller) {
		c.sched = s
	}
}

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	Query    string
	State    State
	Result   engine.Result
	Selected [len(domain.Dimensions)][]string
}

// frame is what one cycle hands to the renderer.
type frame struct {
	seq      uint64
	result   engine.Result
	selected [len(domain.Dimensions)][]string
}

// Controller serializes input events, facet toggles and timer callbacks
// for one session. All methods are safe for concurrent use.
type Controller struct {
	eng      *engine.Engine
	renderer domain.Renderer
	sched    domain.Scheduler
	log      *logger.Logger
	debounce time.Duration

	mu       sync.Mutex
	query    string
	search   engine.SearchState
	sel      *facet.Selection
	state    State
	cancel   func()
	gen      uint64
	seq      uint64
	last     engine.Result
	selected [len(domain.Dimensions)][]string
	closed   bool

	renderMu sync.Mutex
	rendered uint64
}

// New creates a controller. Nothing is rendered until Refresh or the first
// event.
func New(eng *engine.Engine, renderer domain.Renderer, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		eng:      eng,
		renderer: renderer,
		log:      log,
		debounce: DefaultDebounce,
		search:   engine.Inactive,
		sel:      facet.NewSelection(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sched == nil {
		c.sched = timer.New(log)
	}
	c.last = eng.Evaluate(c.search, c.sel)
	return c
}

// Refresh renders the current state without changing it.
func (c *Controller) Refresh() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrSessionClosed
	}
	f := c.evaluateLocked()
	c.mu.Unlock()

	c.render(f)
	return nil
}

// Input records a new query and re-arms the debounce timer. Evaluation
// happens when the timer fires without being re-armed.
func (c *Controller) Input(query string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return domain.ErrSessionClosed
	}

	c.query = query
	c.cancelLocked()
	gen := c.gen
	c.state = StatePending
	c.cancel = c.sched.Schedule(c.debounce, func() { c.fire(gen) })
	return nil
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.state = StateIdle
	c.cancel = nil
	c.search = c.eng.Search(c.query)
	f := c.evaluateLocked()
	c.mu.Unlock()

	c.render(f)
}

// Submit evaluates query immediately, dropping any pending debounce.
func (c *Controller) Submit(query string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrSessionClosed
	}
	c.cancelLocked()
	c.query = query
	c.search = c.eng.Search(query)
	f := c.evaluateLocked()
	c.mu.Unlock()

	c.render(f)
	return nil
}

// ClearSearch empties the query and evaluates at once.
func (c *Controller) ClearSearch() error {
	return c.Submit("")
}

// Toggle flips one facet value and re-evaluates synchronously against the
// last settled search.
func (c *Controller) Toggle(d domain.Dimension, value string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrSessionClosed
	}
	added, err := c.sel.Toggle(d, value)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("toggling %q: %w", value, err)
	}
	c.log.Debug("facet %s %q selected=%t", d, value, added)
	f := c.evaluateLocked()
	c.mu.Unlock()

	c.render(f)
	return nil
}

// ClearFilters drops every facet selection and re-evaluates.
func (c *Controller) ClearFilters() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrSessionClosed
	}
	c.sel.Reset()
	f := c.evaluateLocked()
	c.mu.Unlock()

	c.render(f)
	return nil
}

// IsSelected reports whether a facet value is currently selected.
func (c *Controller) IsSelected(d domain.Dimension, value string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.IsSelected(d, value)
}

// SearchOptions narrows one dropdown's current options to those containing
// query.
func (c *Controller) SearchOptions(d domain.Dimension, query string) ([]string, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("searching options: %w: %s", domain.ErrUnknownDimension, d)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last.Options.Filter(d, query), nil
}

// Snapshot returns the current query, timer state and last result.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Query:    c.query,
		State:    c.state,
		Result:   c.last,
		Selected: c.selected,
	}
}

// Close cancels any pending evaluation. Later calls return ErrSessionClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.cancelLocked()
	c.closed = true
	c.log.Debug("search session closed")
}

// cancelLocked also invalidates a callback that already fired and is
// waiting on mu.
func (c *Controller) cancelLocked() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state = StateIdle
}

func (c *Controller) evaluateLocked() frame {
	c.last = c.eng.Evaluate(c.search, c.sel)
	for _, d := range domain.Dimensions {
		c.selected[d] = c.sel.Values(d)
	}
	c.seq++
	return frame{seq: c.seq, result: c.last, selected: c.selected}
}

// render pushes a frame unless a newer one was already drawn. It runs
// outside mu so renderers may call back into the controller.
func (c *Controller) render(f frame) {
	c.renderMu.Lock()
	defer c.renderMu.Unlock()

	if f.seq <= c.rendered {
		return
	}
	c.rendered = f.seq

	res := f.result
	c.renderer.RenderRecipes(res.Visible)
	c.renderer.RenderCount(res.Count)
	for _, d := range domain.Dimensions {
		c.renderer.RenderFacetOptions(d, res.Options.Values(d), f.selected[d])
	}
	c.renderer.RenderError(res.Err)
}
