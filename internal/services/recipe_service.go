package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/hints"

	"github.com/prepmyweek/prepmyweek-api/internal/models"
	"github.com/prepmyweek/prepmyweek-api/internal/types"
	"github.com/prepmyweek/prepmyweek-api/internal/units"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"
)

// IngredientView is one ingredient line of a recipe detail, carrying both
// the raw authored values and the display rendering.
type IngredientView struct {
	RecipeIngredientID uint64   `json:"recipeIngredientId"`
	IngredientID       uint64   `json:"ingredientId"`
	Name               string   `json:"name"`
	Quantity           float64  `json:"quantity"`
	Unit               string   `json:"unit"`
	StoreSection       string   `json:"storeSection,omitempty"`
	IsOptional         bool     `json:"isOptional"`
	Preparation        *string  `json:"preparation,omitempty"`
	units.FormattedQuantity
}

// StoreRef is the store summary embedded in recipe payloads.
type StoreRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// RecipeDetail is the full recipe payload.
type RecipeDetail struct {
	ID           uint64           `json:"id"`
	UserID       string           `json:"userId"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	Instructions string           `json:"instructions"`
	PrepTime     int              `json:"prepTime"`
	CookTime     int              `json:"cookTime"`
	TotalTime    int              `json:"totalTime"`
	Servings     int              `json:"servings"`
	Course       string           `json:"course"`
	ImageURL     string           `json:"imageUrl,omitempty"`
	IsVegetarian bool             `json:"isVegetarian"`
	Status       string           `json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
	Stores       []StoreRef       `json:"stores"`
	Ingredients  []IngredientView `json:"ingredients"`
}

// RecipeSummary is the compact listing payload.
type RecipeSummary struct {
	ID              uint64    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	PrepTime        int       `json:"prepTime"`
	CookTime        int       `json:"cookTime"`
	TotalTime       int       `json:"totalTime"`
	Servings        int       `json:"servings"`
	Course          string    `json:"course"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	IsVegetarian    bool      `json:"isVegetarian"`
	Status          string    `json:"status"`
	IngredientCount int       `json:"ingredientCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// StoreRecipeQuery is the filter/sort/paging input for store listings.
type StoreRecipeQuery struct {
	Page       int
	Limit      int
	Search     string
	Vegetarian *bool
	Courses    []string
	Sort       string // newest | ingredients | cooktime
}

// PagedRecipes is a page of summaries plus paging metadata.
type PagedRecipes struct {
	Recipes    []RecipeSummary `json:"recipes"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

// CreateRecipe inserts a recipe for the given user. New recipes always
// start pending regardless of who submits them. Ingredient names are
// deduplicated against the global ingredients table, and convertible
// units get their base-unit normalization stored alongside the raw values.
func CreateRecipe(db *gorm.DB, userID string, in *RecipeInput) (*RecipeDetail, error) {
	if issues := in.Validate(); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	recipe := models.Recipe{
		UserID:       userID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Instructions: in.Instructions,
		PrepTime:     *in.PrepTime,
		CookTime:     *in.CookTime,
		Servings:     *in.Servings,
		Course:       in.Course,
		ImageURL:     in.ImageURL,
		IsVegetarian: in.IsVegetarian,
		Status:       models.StatusPending,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if err := linkStores(tx, recipe.ID, types.Uint64Slice(in.StoreIDs)); err != nil {
			return err
		}
		for i := range in.Ingredients {
			if _, err := createIngredientLine(tx, recipe.ID, &in.Ingredients[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetRecipe(db, recipe.ID, false)
}

// UpdateRecipe replaces a recipe's fields, store links and ingredient
// lines. Only the owner or an admin may update; non-admin edits of an
// approved recipe knock it back to pending for re-review.
func UpdateRecipe(db *gorm.DB, recipeID uint64, userID string, isAdmin bool, in *RecipeInput) (*RecipeDetail, error) {
	if issues := in.Validate(); len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	var recipe models.Recipe
	if err := db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	if recipe.UserID != userID && !isAdmin {
		return nil, ErrForbidden
	}

	recipe.Title = strings.TrimSpace(in.Title)
	recipe.Description = in.Description
	recipe.Instructions = in.Instructions
	recipe.PrepTime = *in.PrepTime
	recipe.CookTime = *in.CookTime
	recipe.Servings = *in.Servings
	recipe.Course = in.Course
	recipe.ImageURL = in.ImageURL
	recipe.IsVegetarian = in.IsVegetarian
	if !isAdmin {
		recipe.Status = models.StatusPending
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&recipe).Error; err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeStore{}).Error; err != nil {
			return fmt.Errorf("failed to clear store links: %w", err)
		}
		if err := linkStores(tx, recipe.ID, types.Uint64Slice(in.StoreIDs)); err != nil {
			return err
		}

		return reconcileIngredients(tx, recipe.ID, in.Ingredients)
	})
	if err != nil {
		return nil, err
	}

	return GetRecipe(db, recipe.ID, false)
}

// DeleteRecipe removes a recipe and its ingredient lines. Only the owner
// or an admin may delete.
func DeleteRecipe(db *gorm.DB, recipeID uint64, userID string, isAdmin bool) error {
	var recipe models.Recipe
	if err := db.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load recipe: %w", err)
	}
	if recipe.UserID != userID && !isAdmin {
		return ErrForbidden
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

// GetRecipe loads one recipe with its stores and ingredient lines.
func GetRecipe(db *gorm.DB, recipeID uint64, preferMetric bool) (*RecipeDetail, error) {
	var recipe models.Recipe
	err := db.
		Preload("Stores").
		Preload("Ingredients.Ingredient").
		First(&recipe, recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}

	return recipeToDetail(&recipe, preferMetric), nil
}

// ListUserRecipes returns summaries of all recipes owned by the user,
// newest first, optionally filtered to vegetarian recipes.
func ListUserRecipes(db *gorm.DB, userID string, vegetarian *bool) ([]RecipeSummary, error) {
	q := db.Model(&models.Recipe{}).
		Preload("Ingredients").
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if vegetarian != nil {
		q = q.Where("is_vegetarian = ?", *vegetarian)
	}

	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return summarize(recipes), nil
}

// ListApprovedRecipes returns summaries of every approved recipe, newest
// first, optionally filtered to vegetarian recipes.
func ListApprovedRecipes(db *gorm.DB, vegetarian *bool) ([]RecipeSummary, error) {
	q := db.Model(&models.Recipe{}).
		Preload("Ingredients").
		Where("status = ?", models.StatusApproved).
		Order("created_at DESC")
	if vegetarian != nil {
		q = q.Where("is_vegetarian = ?", *vegetarian)
	}

	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return summarize(recipes), nil
}

// ListStoreRecipes returns the approved recipes shoppable at one store,
// filtered, sorted and paged per the query.
func ListStoreRecipes(db *gorm.DB, storeID uint64, q *StoreRecipeQuery) (*PagedRecipes, error) {
	var store models.GroceryStore
	if err := db.First(&store, storeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	base := db.Model(&models.Recipe{})
	// USE INDEX is MySQL/MariaDB syntax only.
	if db.Dialector.Name() == "mysql" {
		base = base.Clauses(hints.UseIndex("idx_recipes_status"))
	}
	base = base.
		Joins("JOIN recipe_stores rs ON rs.recipe_id = recipes.id").
		Where("rs.store_id = ?", storeID).
		Where("recipes.status = ?", models.StatusApproved)

	if q.Search != "" {
		like := "%" + q.Search + "%"
		base = base.Where("recipes.title LIKE ? OR recipes.instructions LIKE ?", like, like)
	}
	if q.Vegetarian != nil {
		base = base.Where("recipes.is_vegetarian = ?", *q.Vegetarian)
	}
	if len(q.Courses) > 0 {
		base = base.Where("recipes.course IN ?", q.Courses)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}

	switch q.Sort {
	case "ingredients":
		base = base.Order("(SELECT COUNT(*) FROM recipe_ingredients ri WHERE ri.recipe_id = recipes.id) ASC")
	case "cooktime":
		base = base.Order("recipes.cook_time ASC")
	default:
		base = base.Order("recipes.created_at DESC")
	}

	var recipes []models.Recipe
	err := base.
		Preload("Ingredients").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list store recipes: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &PagedRecipes{
		Recipes:    summarize(recipes),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// DeleteRecipeIngredient removes a single ingredient line. The caller must
// own the parent recipe or be an admin.
func DeleteRecipeIngredient(db *gorm.DB, lineID uint64, userID string, isAdmin bool) error {
	var line models.RecipeIngredient
	if err := db.First(&line, lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load recipe ingredient: %w", err)
	}

	var recipe models.Recipe
	if err := db.First(&recipe, line.RecipeID).Error; err != nil {
		return fmt.Errorf("failed to load recipe: %w", err)
	}
	if recipe.UserID != userID && !isAdmin {
		return ErrForbidden
	}

	if err := db.Delete(&line).Error; err != nil {
		return fmt.Errorf("failed to delete recipe ingredient: %w", err)
	}
	return nil
}

// SuggestIngredients returns up to ten ingredient names matching the
// prefix, alphabetically. Queries shorter than two characters return
// nothing rather than the whole table.
func SuggestIngredients(db *gorm.DB, query string) ([]models.Ingredient, error) {
	q := normalizeIngredientName(query)
	if len(q) < 2 {
		return []models.Ingredient{}, nil
	}

	var ingredients []models.Ingredient
	err := db.
		Where("name LIKE ?", q+"%").
		Order("name ASC").
		Limit(10).
		Find(&ingredients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to suggest ingredients: %w", err)
	}
	return ingredients, nil
}

// findOrCreateIngredient resolves a submitted name to the global
// ingredient row, creating it when new.
func findOrCreateIngredient(tx *gorm.DB, name string) (*models.Ingredient, error) {
	canonical := normalizeIngredientName(name)

	var ingredient models.Ingredient
	err := tx.Where("name = ?", canonical).First(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up ingredient: %w", err)
	}

	ingredient = models.Ingredient{Name: canonical}
	if err := tx.Create(&ingredient).Error; err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return &ingredient, nil
}

// createIngredientLine inserts one RecipeIngredient, computing the
// normalized base-unit values when the unit is convertible.
func createIngredientLine(tx *gorm.DB, recipeID uint64, in *IngredientInput) (*models.RecipeIngredient, error) {
	ingredient, err := findOrCreateIngredient(tx, in.Name)
	if err != nil {
		return nil, err
	}

	line := models.RecipeIngredient{
		RecipeID:     recipeID,
		IngredientID: ingredient.ID,
		Quantity:     in.Quantity,
		Unit:         strings.ToLower(strings.TrimSpace(in.Unit)),
		StoreSection: in.StoreSection,
		IsOptional:   in.IsOptional,
		Preparation:  in.Preparation,
	}
	applyNormalization(&line)

	if err := tx.Create(&line).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe ingredient: %w", err)
	}
	return &line, nil
}

// applyNormalization fills the normalized fields when the unit converts
// to a base unit, and clears them when it does not.
func applyNormalization(line *models.RecipeIngredient) {
	n := units.Normalize(line.Quantity, line.Unit)
	if n.Converted {
		q, u := n.Quantity, n.Unit
		line.NormalizedQuantity = &q
		line.NormalizedUnit = &u
	} else {
		line.NormalizedQuantity = nil
		line.NormalizedUnit = nil
	}
}

// reconcileIngredients brings a recipe's ingredient lines in sync with the
// submitted set: lines carrying a known recipeIngredientId are updated in
// place, new lines are inserted, and existing lines absent from the
// submission are deleted.
func reconcileIngredients(tx *gorm.DB, recipeID uint64, inputs []IngredientInput) error {
	var existing []models.RecipeIngredient
	if err := tx.Where("recipe_id = ?", recipeID).Find(&existing).Error; err != nil {
		return fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	byID := make(map[uint64]*models.RecipeIngredient, len(existing))
	for i := range existing {
		byID[existing[i].ID] = &existing[i]
	}

	submitted := make(map[uint64]bool, len(inputs))
	for i := range inputs {
		in := &inputs[i]
		line, ok := byID[in.RecipeIngredientID]
		if in.RecipeIngredientID != 0 && ok {
			submitted[line.ID] = true

			ingredient, err := findOrCreateIngredient(tx, in.Name)
			if err != nil {
				return err
			}
			line.IngredientID = ingredient.ID
			line.Quantity = in.Quantity
			line.Unit = strings.ToLower(strings.TrimSpace(in.Unit))
			line.StoreSection = in.StoreSection
			line.IsOptional = in.IsOptional
			line.Preparation = in.Preparation
			applyNormalization(line)

			if err := tx.Save(line).Error; err != nil {
				return fmt.Errorf("failed to update recipe ingredient: %w", err)
			}
			continue
		}

		if _, err := createIngredientLine(tx, recipeID, in); err != nil {
			return err
		}
	}

	for id := range byID {
		if !submitted[id] {
			if err := tx.Delete(&models.RecipeIngredient{}, id).Error; err != nil {
				return fmt.Errorf("failed to delete recipe ingredient: %w", err)
			}
		}
	}
	return nil
}

func linkStores(tx *gorm.DB, recipeID uint64, storeIDs []uint64) error {
	for _, storeID := range storeIDs {
		var store models.GroceryStore
		if err := tx.First(&store, storeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &ValidationError{Issues: []utils.FieldIssue{{
					Path:    "storeIds",
					Message: fmt.Sprintf("Store %d does not exist", storeID),
				}}}
			}
			return fmt.Errorf("failed to load store: %w", err)
		}
		link := models.RecipeStore{RecipeID: recipeID, StoreID: storeID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to link store: %w", err)
		}
	}
	return nil
}

func recipeToDetail(r *models.Recipe, preferMetric bool) *RecipeDetail {
	detail := &RecipeDetail{
		ID:           r.ID,
		UserID:       r.UserID,
		Title:        r.Title,
		Description:  r.Description,
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		TotalTime:    r.PrepTime + r.CookTime,
		Servings:     r.Servings,
		Course:       r.Course,
		ImageURL:     r.ImageURL,
		IsVegetarian: r.IsVegetarian,
		Status:       r.Status,
		CreatedAt:    r.CreatedAt,
		Stores:       make([]StoreRef, 0, len(r.Stores)),
		Ingredients:  make([]IngredientView, 0, len(r.Ingredients)),
	}

	for _, s := range r.Stores {
		detail.Stores = append(detail.Stores, StoreRef{ID: s.ID, Name: s.Name})
	}

	for _, line := range r.Ingredients {
		name := ""
		if line.Ingredient != nil {
			name = line.Ingredient.Name
		}

		quantity, unit := line.Quantity, line.Unit
		if line.NormalizedQuantity != nil && line.NormalizedUnit != nil {
			quantity, unit = *line.NormalizedQuantity, *line.NormalizedUnit
		}

		detail.Ingredients = append(detail.Ingredients, IngredientView{
			RecipeIngredientID: line.ID,
			IngredientID:       line.IngredientID,
			Name:               name,
			Quantity:           line.Quantity,
			Unit:               line.Unit,
			StoreSection:       line.StoreSection,
			IsOptional:         line.IsOptional,
			Preparation:        line.Preparation,
			FormattedQuantity:  units.ForDisplay(quantity, unit, preferMetric),
		})
	}

	return detail
}

func summarize(recipes []models.Recipe) []RecipeSummary {
	summaries := make([]RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, RecipeSummary{
			ID:              r.ID,
			Title:           r.Title,
			Description:     r.Description,
			PrepTime:        r.PrepTime,
			CookTime:        r.CookTime,
			TotalTime:       r.PrepTime + r.CookTime,
			Servings:        r.Servings,
			Course:          r.Course,
			ImageURL:        r.ImageURL,
			IsVegetarian:    r.IsVegetarian,
			Status:          r.Status,
			IngredientCount: len(r.Ingredients),
			CreatedAt:       r.CreatedAt,
		})
	}
	return summaries
}
