package display

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/petitsplats/internal/domain"
)

// CountLabel renders the recipe counter. The "no filter" sentinel shows
// total, the size of the whole catalog.
func CountLabel(c domain.Count, total int) string {
	n := c.N
	if c.All {
		n = total
	}
	if n == 1 {
		return "1 recette"
	}
	return fmt.Sprintf("%d recettes", n)
}

// ErrorBanner renders the "no recipe matches" message. A nil error yields
// an empty string.
func ErrorBanner(err *domain.EmptyResultError) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Aucune recette ne contient « %s ». Essayez une autre recherche svp.", strings.TrimSpace(err.Term))
}

// DimensionTitle is the dropdown label of a facet dimension.
func DimensionTitle(d domain.Dimension) string {
	switch d {
	case domain.DimensionIngredient:
		return "Ingrédients"
	case domain.DimensionAppliance:
		return "Appareils"
	case domain.DimensionUtensil:
		return "Ustensiles"
	default:
		return d.String()
	}
}

// RecipeLine is the one-line card of a recipe.
func RecipeLine(r *domain.Recipe) string {
	var b strings.Builder
	b.WriteString(r.Name)
	if r.TimeMinutes > 0 {
		fmt.Fprintf(&b, " (%d min)", r.TimeMinutes)
	}
	if r.Appliance != "" {
		b.WriteString(" · ")
		b.WriteString(r.Appliance)
	}
	return b.String()
}

// IngredientLine renders an ingredient with its optional quantity.
func IngredientLine(ing domain.Ingredient) string {
	if ing.Quantity == nil {
		return ing.Ingredient
	}
	q := strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", *ing.Quantity), "0"), ".")
	if ing.Unit == "" {
		return fmt.Sprintf("%s: %s", ing.Ingredient, q)
	}
	return fmt.Sprintf("%s: %s %s", ing.Ingredient, q, ing.Unit)
}
