// Package recipe provides the recipe catalog.
package recipe

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/hammamikhairi/petitsplats/internal/domain"
	"github.com/hammamikhairi/petitsplats/internal/logger"
)

//go:embed data/recipes.json
var embedded []byte

// Compile-time interface check.
var _ domain.CatalogSource = (*Catalog)(nil)

// Catalog is the fixed, ordered recipe set. It is read-only after
// construction, so it is shared between goroutines without locking.
type Catalog struct {
	recipes []*domain.Recipe
	byID    map[int]*domain.Recipe
	log     *logger.Logger
}

// NewCatalog builds a catalog from already decoded recipes. The slice order
// is the catalog order.
func NewCatalog(recipes []*domain.Recipe, log *logger.Logger) *Catalog {
	c := &Catalog{
		recipes: recipes,
		byID:    make(map[int]*domain.Recipe, len(recipes)),
		log:     log,
	}
	for _, r := range recipes {
		c.byID[r.ID] = r
	}
	return c
}

// Embedded returns the catalog bundled with the binary.
func Embedded(log *logger.Logger) (*Catalog, error) {
	return Decode(bytes.NewReader(embedded), log)
}

// LoadFile reads a catalog from a JSON file.
func LoadFile(path string, log *logger.Logger) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	c, err := Decode(f, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode parses and validates a JSON catalog. The document is either a bare
// array of recipes or an object with a "recipes" array.
func Decode(r io.Reader, log *logger.Logger) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var records []recipeRecord
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc struct {
			Recipes []recipeRecord `json:"recipes"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
		}
		records = doc.Recipes
	} else if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	if err := validateRecords(records); err != nil {
		return nil, err
	}

	recipes := make([]*domain.Recipe, len(records))
	for i := range records {
		recipes[i] = records[i].toDomain()
	}

	log.Info("catalog loaded: %d recipes", len(recipes))
	return NewCatalog(recipes, log), nil
}

// All returns every recipe in catalog order. The slice is shared; callers
// must not modify it.
func (c *Catalog) All(ctx context.Context) ([]*domain.Recipe, error) {
	return c.recipes, nil
}

// Recipes is All without the context, for the evaluation hot path.
func (c *Catalog) Recipes() []*domain.Recipe {
	return c.recipes
}

// Len returns the catalog size.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Get returns a recipe by ID.
func (c *Catalog) Get(ctx context.Context, id int) (*domain.Recipe, error) {
	r, ok := c.byID[id]
	if !ok {
		c.log.Debug("recipe not found: %d", id)
		return nil, domain.ErrNotFound
	}
	return r, nil
}
