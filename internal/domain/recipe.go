// Package domain defines the core types and interfaces for the recipe finder.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"strings"
)

// Recipe is one entry of the catalog. Recipes are loaded once and never
// mutated afterwards.
type Recipe struct {
	ID          int
	Name        string
	Servings    int
	Description string
	TimeMinutes int
	Appliance   string
	Ingredients []Ingredient
	Utensils    []string
}

// Ingredient is a single ingredient line. Quantity is nil and Unit empty
// when the recipe leaves them unspecified ("sel", "poivre").
type Ingredient struct {
	Ingredient string
	Quantity   *float64
	Unit       string
}

// Dimension identifies one of the three facet filters.
type Dimension int

const (
	DimensionIngredient Dimension = iota
	DimensionAppliance
	DimensionUtensil
)

// Dimensions lists every valid facet dimension in display order.
var Dimensions = [...]Dimension{DimensionIngredient, DimensionAppliance, DimensionUtensil}

// String returns the canonical dimension name.
func (d Dimension) String() string {
	switch d {
	case DimensionIngredient:
		return "ingredient"
	case DimensionAppliance:
		return "appliance"
	case DimensionUtensil:
		return "utensil"
	default:
		return fmt.Sprintf("dimension(%d)", int(d))
	}
}

// Valid reports whether d is one of the three known dimensions.
func (d Dimension) Valid() bool {
	return d >= DimensionIngredient && d <= DimensionUtensil
}

// dimensionNames maps accepted spellings to dimensions. "ustensil" is the
// spelling used by the catalog data.
var dimensionNames = map[string]Dimension{
	"ingredient":  DimensionIngredient,
	"ingredients": DimensionIngredient,
	"i":           DimensionIngredient,
	"appliance":   DimensionAppliance,
	"appliances":  DimensionAppliance,
	"a":           DimensionAppliance,
	"utensil":     DimensionUtensil,
	"utensils":    DimensionUtensil,
	"ustensil":    DimensionUtensil,
	"ustensils":   DimensionUtensil,
	"u":           DimensionUtensil,
}

// ParseDimension converts a dimension name to a Dimension.
// Returns ErrUnknownDimension for anything else.
func ParseDimension(name string) (Dimension, error) {
	if d, ok := dimensionNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, name)
}

// Count is what the recipe counter shows. All means no filter is engaged
// and the counter displays the whole catalog.
type Count struct {
	All bool
	N   int
}
