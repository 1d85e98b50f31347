package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/petitsplats/internal/domain"
	"github.com/hammamikhairi/petitsplats/internal/engine"
	"github.com/hammamikhairi/petitsplats/internal/logger"
	"github.com/hammamikhairi/petitsplats/internal/recipe"
	"github.com/hammamikhairi/petitsplats/internal/timer"
)

// recordingRenderer keeps the last value of every render call.
type recordingRenderer struct {
	mu       sync.Mutex
	cycles   int
	recipes  []*domain.Recipe
	count    domain.Count
	options  map[domain.Dimension][]string
	selected map[domain.Dimension][]string
	err      *domain.EmptyResultError
}

func newRecorder() *recordingRenderer {
	return &recordingRenderer{
		options:  make(map[domain.Dimension][]string),
		selected: make(map[domain.Dimension][]string),
	}
}

func (r *recordingRenderer) RenderRecipes(recipes []*domain.Recipe) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cycles++
	r.recipes = recipes
}

func (r *recordingRenderer) RenderCount(count domain.Count) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count = count
}

func (r *recordingRenderer) RenderFacetOptions(d domain.Dimension, options, selected []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.options[d] = options
	r.selected[d] = selected
}

func (r *recordingRenderer) RenderError(err *domain.EmptyResultError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *recordingRenderer) cycleCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cycles
}

func (r *recordingRenderer) ids() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.recipes))
	for i, rec := range r.recipes {
		out[i] = rec.ID
	}
	return out
}

func setup(t *testing.T, opts ...Option) (*Controller, *recordingRenderer, *timer.Manual) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	cat, err := recipe.Embedded(log)
	require.NoError(t, err)

	sched := timer.NewManual()
	rec := newRecorder()
	opts = append([]Option{WithScheduler(sched)}, opts...)
	c := New(engine.New(cat.Recipes(), log), rec, log, opts...)
	t.Cleanup(c.Close)
	return c, rec, sched
}

func TestRefreshRendersFullCatalog(t *testing.T) {
	c, rec, _ := setup(t)

	require.NoError(t, c.Refresh())
	assert.Equal(t, 1, rec.cycleCount())
	assert.Len(t, rec.ids(), 20)
	assert.True(t, rec.count.All)
	assert.Nil(t, rec.err)
	assert.Contains(t, rec.options[domain.DimensionAppliance], "blender")
}

func TestInputIsDebounced(t *testing.T) {
	c, rec, sched := setup(t)

	for _, q := range []string{"p", "po", "pou", "poulet"} {
		require.NoError(t, c.Input(q))
		sched.Advance(100 * time.Millisecond)
	}

	assert.Zero(t, rec.cycleCount(), "no evaluation while typing")
	assert.Equal(t, StatePending, c.Snapshot().State)
	assert.Equal(t, 1, sched.Pending(), "only one timer outstanding")

	sched.Advance(399 * time.Millisecond)
	assert.Zero(t, rec.cycleCount())

	sched.Advance(time.Millisecond)
	assert.Equal(t, 1, rec.cycleCount())
	assert.Equal(t, []int{3, 18}, rec.ids())
	assert.False(t, rec.count.All)
	assert.Equal(t, 2, rec.count.N)

	snap := c.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, "poulet", snap.Query)
	assert.True(t, snap.Result.Search.Active)
}

func TestShortQueryRestoresCatalog(t *testing.T) {
	c, rec, sched := setup(t)

	require.NoError(t, c.Input("tarte"))
	sched.Advance(DefaultDebounce)
	require.Less(t, len(rec.ids()), 20)

	require.NoError(t, c.Input("ta"))
	sched.Advance(DefaultDebounce)
	assert.Len(t, rec.ids(), 20)
	assert.True(t, rec.count.All)
	assert.False(t, c.Snapshot().Result.Search.Active)
}

func TestEmptyTextSearchBanner(t *testing.T) {
	c, rec, sched := setup(t)

	require.NoError(t, c.Input("  Fraise "))
	sched.Advance(DefaultDebounce)

	require.NotNil(t, rec.err)
	assert.Equal(t, domain.EmptyTextSearch, rec.err.Kind)
	assert.Equal(t, "  Fraise ", rec.err.Term)
	assert.Empty(t, rec.ids())

	require.NoError(t, c.Input("tomate"))
	sched.Advance(DefaultDebounce)
	assert.Nil(t, rec.err, "banner cleared once results come back")
}

func TestToggleIsImmediate(t *testing.T) {
	c, rec, _ := setup(t)

	require.NoError(t, c.Toggle(domain.DimensionIngredient, "Sel"))
	assert.Equal(t, 1, rec.cycleCount())
	assert.Equal(t, []int{3, 10, 18, 19}, rec.ids())
	assert.Equal(t, []string{"sel"}, rec.selected[domain.DimensionIngredient])
	assert.False(t, rec.count.All)

	require.NoError(t, c.Toggle(domain.DimensionIngredient, "poivre"))
	assert.Equal(t, []int{3, 10, 18}, rec.ids())

	ok, err := c.IsSelected(domain.DimensionIngredient, "POIVRE")
	require.NoError(t, err)
	assert.True(t, ok)

	err = c.Toggle(domain.Dimension(42), "sel")
	assert.ErrorIs(t, err, domain.ErrUnknownDimension)
	assert.Equal(t, 2, rec.cycleCount(), "a rejected toggle renders nothing")
}

func TestToggleUsesSettledSearch(t *testing.T) {
	c, rec, sched := setup(t)

	require.NoError(t, c.Submit("poulet"))
	require.NoError(t, c.Input("poulet citron"))
	require.NoError(t, c.Toggle(domain.DimensionAppliance, "cocotte"))
	assert.Equal(t, []int{3}, rec.ids())

	sched.Advance(DefaultDebounce)
	assert.Empty(t, rec.ids())
	require.NotNil(t, rec.err)
	assert.Equal(t, domain.EmptyFacetCombination, rec.err.Kind)
	assert.Equal(t, "cocotte", rec.err.Term)
}

func TestClearSearchBypassesDebounce(t *testing.T) {
	c, rec, sched := setup(t)

	require.NoError(t, c.Submit("chocolat"))
	require.NoError(t, c.Input("chocolat noir"))
	require.Equal(t, StatePending, c.Snapshot().State)

	require.NoError(t, c.ClearSearch())
	assert.Equal(t, StateIdle, c.Snapshot().State)
	assert.Zero(t, sched.Pending())
	assert.Len(t, rec.ids(), 20)

	cycles := rec.cycleCount()
	sched.Advance(time.Second)
	assert.Equal(t, cycles, rec.cycleCount(), "cancelled timer never fires")
}

func TestClearFilters(t *testing.T) {
	c, rec, _ := setup(t)

	require.NoError(t, c.Toggle(domain.DimensionAppliance, "four"))
	require.NoError(t, c.Toggle(domain.DimensionAppliance, "blender"))
	require.NotNil(t, rec.err)
	assert.Equal(t, "blender", rec.err.Term)

	require.NoError(t, c.ClearFilters())
	assert.Nil(t, rec.err)
	assert.Len(t, rec.ids(), 20)
	assert.True(t, rec.count.All)
	assert.Empty(t, c.Snapshot().Selected[domain.DimensionAppliance])
}

func TestSearchOptions(t *testing.T) {
	c, _, _ := setup(t)

	require.NoError(t, c.Submit("tarte"))
	got, err := c.SearchOptions(domain.DimensionUtensil, "MOULE")
	require.NoError(t, err)
	assert.Equal(t, []string{"moule à tarte"}, got)

	_, err = c.SearchOptions(domain.Dimension(-3), "x")
	assert.ErrorIs(t, err, domain.ErrUnknownDimension)
}

func TestClosedController(t *testing.T) {
	c, rec, sched := setup(t)

	require.NoError(t, c.Input("poulet"))
	c.Close()
	c.Close()

	sched.Advance(time.Second)
	assert.Zero(t, rec.cycleCount())

	assert.ErrorIs(t, c.Input("x"), domain.ErrSessionClosed)
	assert.ErrorIs(t, c.Submit("x"), domain.ErrSessionClosed)
	assert.ErrorIs(t, c.Toggle(domain.DimensionIngredient, "sel"), domain.ErrSessionClosed)
	assert.ErrorIs(t, c.ClearFilters(), domain.ErrSessionClosed)
	assert.ErrorIs(t, c.Refresh(), domain.ErrSessionClosed)
}

func TestRealTimerDebounce(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	cat, err := recipe.Embedded(log)
	require.NoError(t, err)

	rec := newRecorder()
	c := New(engine.New(cat.Recipes(), log), rec, log, WithDebounce(20*time.Millisecond))
	defer c.Close()

	require.NoError(t, c.Input("smoo"))
	require.NoError(t, c.Input("smoothie"))

	assert.Eventually(t, func() bool { return rec.cycleCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{17}, rec.ids())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, rec.cycleCount(), "superseded input never evaluated")
}
