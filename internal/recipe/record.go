package recipe

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/hammamikhairi/petitsplats/internal/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// recipeRecord mirrors the JSON shape of the catalog data. "ustensils" is
// the field name the data set has always used.
type recipeRecord struct {
	ID          int                `json:"id" validate:"gt=0"`
	Image       string             `json:"image"`
	Name        string             `json:"name" validate:"required"`
	Servings    int                `json:"servings" validate:"gte=0"`
	Ingredients []ingredientRecord `json:"ingredients" validate:"min=1,dive"`
	Time        int                `json:"time" validate:"gte=0"`
	Description string             `json:"description"`
	Appliance   string             `json:"appliance" validate:"required"`
	Utensils    []string           `json:"ustensils" validate:"dive,required"`
}

type ingredientRecord struct {
	Ingredient string   `json:"ingredient" validate:"required"`
	Quantity   *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	Unit       string   `json:"unit,omitempty"`
}

func (r *recipeRecord) toDomain() *domain.Recipe {
	ings := make([]domain.Ingredient, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ings[i] = domain.Ingredient{
			Ingredient: ing.Ingredient,
			Quantity:   ing.Quantity,
			Unit:       ing.Unit,
		}
	}
	utensils := make([]string, len(r.Utensils))
	copy(utensils, r.Utensils)

	return &domain.Recipe{
		ID:          r.ID,
		Name:        r.Name,
		Servings:    r.Servings,
		Description: r.Description,
		TimeMinutes: r.Time,
		Appliance:   r.Appliance,
		Ingredients: ings,
		Utensils:    utensils,
	}
}

// validateRecords checks every record and rejects duplicate IDs.
func validateRecords(records []recipeRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no recipes", domain.ErrInvalidCatalog)
	}

	v := getValidator()
	seen := make(map[int]int, len(records))
	var problems []string

	for i := range records {
		rec := &records[i]
		if err := v.Struct(rec); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					problems = append(problems, fmt.Sprintf("recipe[%d] %s: failed %q", i, fe.Namespace(), fe.Tag()))
				}
			} else {
				problems = append(problems, fmt.Sprintf("recipe[%d]: %v", i, err))
			}
		}
		if prev, dup := seen[rec.ID]; dup {
			problems = append(problems, fmt.Sprintf("recipe[%d]: id %d already used by recipe[%d]", i, rec.ID, prev))
		} else {
			seen[rec.ID] = i
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidCatalog, strings.Join(problems, "; "))
	}
	return nil
}
