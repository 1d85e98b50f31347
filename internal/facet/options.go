package facet

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/hammamikhairi/petitsplats/internal/domain"
)

// Options holds, per dimension, the lower-cased values present in a recipe
// list, sorted in French collation order.
type Options struct {
	sets [len(domain.Dimensions)][]string
}

// Derive rebuilds the offerable values from the visible recipes: every
// ingredient name, the appliance and every utensil, lower-cased and
// deduplicated.
func Derive(visible []*domain.Recipe) Options {
	var seen [len(domain.Dimensions)]map[string]struct{}
	for i := range seen {
		seen[i] = make(map[string]struct{})
	}

	var o Options
	add := func(d domain.Dimension, raw string) {
		v := normalize(raw)
		if v == "" {
			return
		}
		if _, ok := seen[d][v]; ok {
			return
		}
		seen[d][v] = struct{}{}
		o.sets[d] = append(o.sets[d], v)
	}

	for _, r := range visible {
		for _, ing := range r.Ingredients {
			add(domain.DimensionIngredient, ing.Ingredient)
		}
		add(domain.DimensionAppliance, r.Appliance)
		for _, u := range r.Utensils {
			add(domain.DimensionUtensil, u)
		}
	}

	col := collate.New(language.French)
	for i := range o.sets {
		col.SortStrings(o.sets[i])
	}
	return o
}

// Values returns a copy of the dimension's sorted values.
func (o Options) Values(d domain.Dimension) []string {
	if !d.Valid() {
		return nil
	}
	return slices.Clone(o.sets[d])
}

// Len returns the number of values offered for the dimension.
func (o Options) Len(d domain.Dimension) int {
	if !d.Valid() {
		return 0
	}
	return len(o.sets[d])
}

// Contains reports whether value is offered for the dimension.
func (o Options) Contains(d domain.Dimension, value string) bool {
	if !d.Valid() {
		return false
	}
	v := normalize(value)
	return slices.Contains(o.sets[d], v)
}

// Filter narrows one dropdown to the values containing query, the way the
// search box inside a dropdown does. An empty query returns every value.
func (o Options) Filter(d domain.Dimension, query string) []string {
	if !d.Valid() {
		return nil
	}
	q := normalize(query)
	if q == "" {
		return o.Values(d)
	}
	var out []string
	for _, v := range o.sets[d] {
		if strings.Contains(v, q) {
			out = append(out, v)
		}
	}
	return out
}
