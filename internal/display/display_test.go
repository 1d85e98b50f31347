package display

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/hammamikhairi/petitsplats/internal/domain"
)

func TestCountLabel(t *testing.T) {
	tests := []struct {
		count domain.Count
		total int
		want  string
	}{
		{domain.Count{All: true, N: 20}, 1500, "1500 recettes"},
		{domain.Count{N: 1}, 1500, "1 recette"},
		{domain.Count{N: 0}, 1500, "0 recettes"},
		{domain.Count{N: 7}, 1500, "7 recettes"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CountLabel(tt.count, tt.total))
	}
}

func TestErrorBanner(t *testing.T) {
	assert.Empty(t, ErrorBanner(nil))
	got := ErrorBanner(&domain.EmptyResultError{Kind: domain.EmptyTextSearch, Term: " fraise "})
	assert.Equal(t, "Aucune recette ne contient « fraise ». Essayez une autre recherche svp.", got)
}

func TestRecipeAndIngredientLines(t *testing.T) {
	qty := 2.5
	whole := 500.0
	r := &domain.Recipe{Name: "Brownie", TimeMinutes: 60, Appliance: "Four"}

	assert.Equal(t, "Brownie (60 min) · Four", RecipeLine(r))
	assert.Equal(t, "Lait: 2.5 litres", IngredientLine(domain.Ingredient{Ingredient: "Lait", Quantity: &qty, Unit: "litres"}))
	assert.Equal(t, "Farine: 500", IngredientLine(domain.Ingredient{Ingredient: "Farine", Quantity: &whole}))
	assert.Equal(t, "Sel", IngredientLine(domain.Ingredient{Ingredient: "Sel"}))
}

func TestModelForwardsKeystrokes(t *testing.T) {
	var seen []string
	ui := NewUI(func(q string) { seen = append(seen, q) })
	ti := textinput.New()
	ti.Focus()
	m := model{ui: ui, input: ti}

	var next tea.Model = m
	for _, r := range "ail" {
		next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, []string{"a", "ai", "ail"}, seen)

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "ail", <-ui.InputChan(), "enter submits the query")
	assert.Equal(t, "ail", next.(model).input.Value(), "the search box keeps its query")
}

func TestModelCommandsBypassSearch(t *testing.T) {
	var seen []string
	ui := NewUI(func(q string) { seen = append(seen, q) })
	ti := textinput.New()
	ti.Focus()
	var next tea.Model = model{ui: ui, input: ti}

	for _, r := range ":q" {
		next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, seen)
	assert.Equal(t, ":q", <-ui.InputChan())
	assert.Empty(t, next.(model).input.Value(), "commands are cleared after enter")
}

func TestBoardView(t *testing.T) {
	ui := NewUI(nil, WithMaxCards(1), WithMaxOptions(1), WithTotal(1500))
	ui.RenderRecipes([]*domain.Recipe{{Name: "Brownie"}, {Name: "Tartiflette"}})
	ui.RenderCount(domain.Count{All: true})
	ui.RenderFacetOptions(domain.DimensionIngredient, []string{"beurre", "oeuf", "sucre"}, []string{"oeuf"})
	ui.RenderError(&domain.EmptyResultError{Kind: domain.EmptyFacetCombination, Term: "oeuf"})

	m := model{ui: ui, input: textinput.New()}
	view := m.View()

	assert.Contains(t, view, "Aucune recette ne contient « oeuf »")
	assert.Contains(t, view, "Brownie")
	assert.NotContains(t, view, "Tartiflette")
	assert.Contains(t, view, "et 1 autres")
	assert.Contains(t, view, "1500 recettes")
	assert.Contains(t, view, "✓ oeuf")
	assert.Contains(t, view, "beurre")
	assert.False(t, strings.Contains(view, "  sucre"), "options beyond the cap are summarized")

	ui.RenderError(nil)
	assert.NotContains(t, m.View(), "Aucune recette")
}
