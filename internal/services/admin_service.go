package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/models"
)

// ListAllRecipes returns summaries of every recipe regardless of status,
// newest first.
func ListAllRecipes(db *gorm.DB) ([]RecipeSummary, error) {
	var recipes []models.Recipe
	err := db.
		Preload("Ingredients").
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return summarize(recipes), nil
}

// ListPendingRecipes returns summaries of recipes awaiting review, oldest
// first so the queue drains in submission order.
func ListPendingRecipes(db *gorm.DB) ([]RecipeSummary, error) {
	var recipes []models.Recipe
	err := db.
		Preload("Ingredients").
		Where("status = ?", models.StatusPending).
		Order("created_at ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending recipes: %w", err)
	}
	return summarize(recipes), nil
}

// CountPendingRecipes returns the number of recipes awaiting review.
func CountPendingRecipes(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Recipe{}).
		Where("status = ?", models.StatusPending).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count pending recipes: %w", err)
	}
	return count, nil
}

// ApproveRecipe marks one recipe approved.
func ApproveRecipe(db *gorm.DB, recipeID uint64) error {
	var recipe models.Recipe
	if err := db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load recipe: %w", err)
	}

	err := db.Model(&recipe).Update("status", models.StatusApproved).Error
	if err != nil {
		return fmt.Errorf("failed to approve recipe: %w", err)
	}
	return nil
}

// ApproveRecipes approves multiple recipes in one pass and returns the
// number of rows actually flipped. Already-approved or unknown IDs are
// silently skipped.
func ApproveRecipes(db *gorm.DB, recipeIDs []uint64) (int64, error) {
	if len(recipeIDs) == 0 {
		return 0, nil
	}

	result := db.Model(&models.Recipe{}).
		Where("id IN ?", recipeIDs).
		Where("status = ?", models.StatusPending).
		Update("status", models.StatusApproved)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to approve recipes: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// RejectRecipe deletes a recipe outright. Rejection is not a status — the
// author resubmits from scratch.
func RejectRecipe(db *gorm.DB, recipeID uint64) error {
	var recipe models.Recipe
	if err := db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load recipe: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return fmt.Errorf("failed to delete recipe ingredients: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeStore{}).Error; err != nil {
			return fmt.Errorf("failed to delete store links: %w", err)
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}
