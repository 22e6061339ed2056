package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/models"
)

// CurrentPrepView is the hydrated current prep: the saved IDs plus the
// recipes that still exist, rendered as full details.
type CurrentPrepView struct {
	RecipeIDs []uint64       `json:"recipeIds"`
	Recipes   []RecipeDetail `json:"recipes"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// PastPrepSummary is the archive listing payload.
type PastPrepSummary struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	RecipeCount int       `json:"recipeCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PastPrepDetail is one archived prep with its surviving recipes.
type PastPrepDetail struct {
	ID        uint64         `json:"id"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"createdAt"`
	Recipes   []RecipeDetail `json:"recipes"`
}

// GetCurrentPrep returns the user's current prep, hydrated. A user with no
// saved prep gets an empty view rather than a 404. Recipes deleted since
// the prep was saved are dropped from the hydration but kept in the ID
// list, matching what the Node API returned.
func GetCurrentPrep(db *gorm.DB, userID string, preferMetric bool) (*CurrentPrepView, error) {
	var prep models.CurrentPrep
	err := db.Where("user_id = ?", userID).First(&prep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &CurrentPrepView{RecipeIDs: []uint64{}, Recipes: []RecipeDetail{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load current prep: %w", err)
	}

	recipes, err := hydrateRecipes(db, prep.RecipeIDs, preferMetric)
	if err != nil {
		return nil, err
	}

	return &CurrentPrepView{
		RecipeIDs: prep.RecipeIDs,
		Recipes:   recipes,
		UpdatedAt: prep.UpdatedAt,
	}, nil
}

// SaveCurrentPrep replaces the user's current prep with the given recipe
// set (upsert on user).
func SaveCurrentPrep(db *gorm.DB, userID string, recipeIDs []uint64) error {
	var prep models.CurrentPrep
	err := db.Where("user_id = ?", userID).First(&prep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prep = models.CurrentPrep{
			UserID:    userID,
			RecipeIDs: datatypes.NewJSONSlice(recipeIDs),
		}
		if err := db.Create(&prep).Error; err != nil {
			return fmt.Errorf("failed to save current prep: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load current prep: %w", err)
	}

	prep.RecipeIDs = datatypes.NewJSONSlice(recipeIDs)
	if err := db.Save(&prep).Error; err != nil {
		return fmt.Errorf("failed to save current prep: %w", err)
	}
	return nil
}

// ClearCurrentPrep removes the user's current prep if one exists.
func ClearCurrentPrep(db *gorm.DB, userID string) error {
	err := db.Where("user_id = ?", userID).Delete(&models.CurrentPrep{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear current prep: %w", err)
	}
	return nil
}

// CreatePastPrep archives a set of recipes under a name.
func CreatePastPrep(db *gorm.DB, userID, name string, recipeIDs []uint64) (*models.PastPrep, error) {
	if name == "" {
		name = "Prep from " + time.Now().Format("Jan 2, 2006")
	}

	prep := models.PastPrep{UserID: userID, Name: name}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&prep).Error; err != nil {
			return fmt.Errorf("failed to create past prep: %w", err)
		}
		for _, recipeID := range recipeIDs {
			link := models.PastPrepRecipe{PastPrepID: prep.ID, RecipeID: recipeID}
			if err := tx.Create(&link).Error; err != nil {
				return fmt.Errorf("failed to link past prep recipe: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &prep, nil
}

// ListPastPreps returns the user's archive, newest first.
func ListPastPreps(db *gorm.DB, userID string) ([]PastPrepSummary, error) {
	var preps []models.PastPrep
	err := db.
		Preload("Recipes").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&preps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list past preps: %w", err)
	}

	summaries := make([]PastPrepSummary, 0, len(preps))
	for _, p := range preps {
		summaries = append(summaries, PastPrepSummary{
			ID:          p.ID,
			Name:        p.Name,
			RecipeCount: len(p.Recipes),
			CreatedAt:   p.CreatedAt,
		})
	}
	return summaries, nil
}

// GetPastPrep loads one archived prep with its recipes. Only the owner may
// read it.
func GetPastPrep(db *gorm.DB, prepID uint64, userID string, preferMetric bool) (*PastPrepDetail, error) {
	prep, err := loadOwnedPastPrep(db, prepID, userID)
	if err != nil {
		return nil, err
	}

	recipes, err := hydrateRecipes(db, pastPrepRecipeIDs(prep), preferMetric)
	if err != nil {
		return nil, err
	}

	return &PastPrepDetail{
		ID:        prep.ID,
		Name:      prep.Name,
		CreatedAt: prep.CreatedAt,
		Recipes:   recipes,
	}, nil
}

// DeletePastPrep removes an archived prep. Only the owner may delete it.
func DeletePastPrep(db *gorm.DB, prepID uint64, userID string) error {
	prep, err := loadOwnedPastPrep(db, prepID, userID)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("past_prep_id = ?", prep.ID).Delete(&models.PastPrepRecipe{}).Error; err != nil {
			return fmt.Errorf("failed to delete past prep recipes: %w", err)
		}
		if err := tx.Delete(prep).Error; err != nil {
			return fmt.Errorf("failed to delete past prep: %w", err)
		}
		return nil
	})
}

// SetPastPrepAsCurrent copies an archived prep's recipe set into the
// user's current prep.
func SetPastPrepAsCurrent(db *gorm.DB, prepID uint64, userID string) error {
	prep, err := loadOwnedPastPrep(db, prepID, userID)
	if err != nil {
		return err
	}
	return SaveCurrentPrep(db, userID, pastPrepRecipeIDs(prep))
}

func loadOwnedPastPrep(db *gorm.DB, prepID uint64, userID string) (*models.PastPrep, error) {
	var prep models.PastPrep
	err := db.Preload("Recipes").First(&prep, prepID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load past prep: %w", err)
	}
	if prep.UserID != userID {
		return nil, ErrForbidden
	}
	return &prep, nil
}

func pastPrepRecipeIDs(prep *models.PastPrep) []uint64 {
	ids := make([]uint64, 0, len(prep.Recipes))
	for _, r := range prep.Recipes {
		ids = append(ids, r.RecipeID)
	}
	return ids
}

// hydrateRecipes loads details for the surviving recipes of an ID set,
// preserving the set's order.
func hydrateRecipes(db *gorm.DB, recipeIDs []uint64, preferMetric bool) ([]RecipeDetail, error) {
	if len(recipeIDs) == 0 {
		return []RecipeDetail{}, nil
	}

	var recipes []models.Recipe
	err := db.
		Preload("Stores").
		Preload("Ingredients.Ingredient").
		Where("id IN ?", recipeIDs).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load prep recipes: %w", err)
	}

	byID := make(map[uint64]*models.Recipe, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = &recipes[i]
	}

	details := make([]RecipeDetail, 0, len(recipes))
	for _, id := range recipeIDs {
		if r, ok := byID[id]; ok {
			details = append(details, *recipeToDetail(r, preferMetric))
		}
	}
	return details, nil
}
