package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/grocery"
	"github.com/prepmyweek/prepmyweek-api/internal/models"
)

// GenerateGroceryList builds the consolidated grocery list for a set of
// recipe IDs. IDs that no longer resolve are ignored; if none resolve the
// request is a not-found.
func GenerateGroceryList(db *gorm.DB, recipeIDs []uint64, preferMetric bool) (grocery.List, error) {
	if len(recipeIDs) == 0 {
		return nil, ErrNotFound
	}

	var recipes []models.Recipe
	err := db.
		Preload("Ingredients.Ingredient").
		Where("id IN ?", recipeIDs).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	if len(recipes) == 0 {
		return nil, ErrNotFound
	}

	input := make([]grocery.Recipe, 0, len(recipes))
	for _, r := range recipes {
		lines := make([]grocery.Line, 0, len(r.Ingredients))
		for _, ri := range r.Ingredients {
			name := ""
			if ri.Ingredient != nil {
				name = ri.Ingredient.Name
			}
			q := ri.Quantity
			lines = append(lines, grocery.Line{
				IngredientID:       ri.IngredientID,
				Name:               name,
				Quantity:           &q,
				Unit:               ri.Unit,
				NormalizedQuantity: ri.NormalizedQuantity,
				NormalizedUnit:     ri.NormalizedUnit,
				StoreSection:       ri.StoreSection,
			})
		}
		input = append(input, grocery.Recipe{Ingredients: lines})
	}

	return grocery.Aggregate(input, preferMetric), nil
}
