package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/models"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"
)

// StoreView is the store listing payload.
type StoreView struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	LogoURL     string `json:"logoUrl,omitempty"`
	RecipeCount int64  `json:"recipeCount"`
}

// ListStores returns all stores alphabetically.
func ListStores(db *gorm.DB) ([]models.GroceryStore, error) {
	var stores []models.GroceryStore
	if err := db.Order("name ASC").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

// ListStoresWithRecipeCount returns all stores with their approved recipe
// counts, alphabetically. Stores without recipes still appear with zero.
func ListStoresWithRecipeCount(db *gorm.DB) ([]StoreView, error) {
	stores, err := ListStores(db)
	if err != nil {
		return nil, err
	}

	views := make([]StoreView, 0, len(stores))
	for _, s := range stores {
		var count int64
		err := db.Model(&models.Recipe{}).
			Joins("JOIN recipe_stores rs ON rs.recipe_id = recipes.id").
			Where("rs.store_id = ?", s.ID).
			Where("recipes.status = ?", models.StatusApproved).
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("failed to count store recipes: %w", err)
		}
		views = append(views, StoreView{
			ID:          s.ID,
			Name:        s.Name,
			LogoURL:     s.LogoURL,
			RecipeCount: count,
		})
	}
	return views, nil
}

// GetStore loads one store.
func GetStore(db *gorm.DB, storeID uint64) (*models.GroceryStore, error) {
	var store models.GroceryStore
	if err := db.First(&store, storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	return &store, nil
}

// CreateStore adds a new grocery store. Duplicate names conflict.
func CreateStore(db *gorm.DB, name, logoURL string) (*models.GroceryStore, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return nil, &ValidationError{Issues: []utils.FieldIssue{{
			Path:    "name",
			Message: "Store name must be at least 2 characters",
		}}}
	}

	var existing models.GroceryStore
	err := db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check store name: %w", err)
	}

	store := models.GroceryStore{Name: name, LogoURL: logoURL}
	if err := db.Create(&store).Error; err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	return &store, nil
}

// DeleteStore removes a store. Stores still linked to recipes cannot be
// deleted.
func DeleteStore(db *gorm.DB, storeID uint64) error {
	var store models.GroceryStore
	if err := db.First(&store, storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load store: %w", err)
	}

	var linked int64
	err := db.Model(&models.RecipeStore{}).
		Where("store_id = ?", storeID).
		Count(&linked).Error
	if err != nil {
		return fmt.Errorf("failed to check store links: %w", err)
	}
	if linked > 0 {
		return ErrConflict
	}

	if err := db.Delete(&store).Error; err != nil {
		return fmt.Errorf("failed to delete store: %w", err)
	}
	return nil
}
