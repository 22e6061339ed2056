package services

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prepmyweek/prepmyweek-api/internal/models"
	"github.com/prepmyweek/prepmyweek-api/internal/types"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.UserProfile{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.RecipeIngredient{},
		&models.GroceryStore{},
		&models.RecipeStore{},
		&models.CurrentPrep{},
		&models.PastPrep{},
		&models.PastPrepRecipe{},
		&models.Feedback{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func intptr(v int) *int { return &v }

func flexIDs(ids ...uint64) types.FlexList[types.FlexUint64] {
	out := make(types.FlexList[types.FlexUint64], len(ids))
	for i, id := range ids {
		out[i] = types.FlexUint64(id)
	}
	return out
}

func validRecipeInput() *RecipeInput {
	return &RecipeInput{
		Title:        "Garlic Butter Pasta",
		Instructions: "Boil pasta, melt butter, toss with garlic.",
		PrepTime:     intptr(10),
		CookTime:     intptr(15),
		Servings:     intptr(4),
		Course:       models.CourseDinner,
		Ingredients: []IngredientInput{
			{Name: "Garlic", Quantity: 2, Unit: "clove", StoreSection: "PRODUCE"},
			{Name: "butter", Quantity: 0.5, Unit: "cup", StoreSection: "DAIRY"},
		},
	}
}

func TestCreateRecipe(t *testing.T) {
	db := setupTestDB(t)

	recipe, err := CreateRecipe(db, "user-1", validRecipeInput())
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	if recipe.Status != models.StatusPending {
		t.Errorf("Expected status pending, got %s", recipe.Status)
	}
	if len(recipe.Ingredients) != 2 {
		t.Fatalf("Expected 2 ingredients, got %d", len(recipe.Ingredients))
	}

	// Ingredient names are stored canonicalized.
	var garlic models.Ingredient
	if err := db.Where("name = ?", "garlic").First(&garlic).Error; err != nil {
		t.Errorf("Expected canonicalized 'garlic' ingredient row: %v", err)
	}

	// Convertible units get base-unit normalization at write time.
	var butterLine models.RecipeIngredient
	err = db.Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("ingredients.name = ?", "butter").
		First(&butterLine).Error
	if err != nil {
		t.Fatalf("Failed to load butter line: %v", err)
	}
	if butterLine.NormalizedQuantity == nil || butterLine.NormalizedUnit == nil {
		t.Fatal("Expected normalized fields for cup unit")
	}
	if *butterLine.NormalizedQuantity != 8 || *butterLine.NormalizedUnit != "tbsp" {
		t.Errorf("Expected 8 tbsp, got %g %s", *butterLine.NormalizedQuantity, *butterLine.NormalizedUnit)
	}

	// Count units stay raw.
	var garlicLine models.RecipeIngredient
	db.Where("ingredient_id = ?", garlic.ID).First(&garlicLine)
	if garlicLine.NormalizedQuantity != nil {
		t.Error("Expected no normalization for count unit")
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	db := setupTestDB(t)

	input := validRecipeInput()
	input.Title = "ab"
	input.Servings = nil
	input.Course = "BRUNCH"
	input.Ingredients[0].Quantity = 0

	_, err := CreateRecipe(db, "user-1", input)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 4 {
		t.Errorf("Expected 4 issues, got %d: %v", len(verr.Issues), verr.Issues)
	}
}

func TestCreateRecipeDeduplicatesIngredients(t *testing.T) {
	db := setupTestDB(t)

	if _, err := CreateRecipe(db, "user-1", validRecipeInput()); err != nil {
		t.Fatalf("First create failed: %v", err)
	}
	if _, err := CreateRecipe(db, "user-2", validRecipeInput()); err != nil {
		t.Fatalf("Second create failed: %v", err)
	}

	var count int64
	db.Model(&models.Ingredient{}).Where("name = ?", "garlic").Count(&count)
	if count != 1 {
		t.Errorf("Expected one garlic row, got %d", count)
	}
}

func TestUpdateRecipeOwnership(t *testing.T) {
	db := setupTestDB(t)

	created, err := CreateRecipe(db, "user-1", validRecipeInput())
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	input := validRecipeInput()
	input.Title = "Renamed Pasta"

	if _, err := UpdateRecipe(db, created.ID, "user-2", false, input); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for non-owner, got %v", err)
	}

	updated, err := UpdateRecipe(db, created.ID, "user-2", true, input)
	if err != nil {
		t.Fatalf("Admin update failed: %v", err)
	}
	if updated.Title != "Renamed Pasta" {
		t.Errorf("Expected updated title, got %s", updated.Title)
	}
}

func TestUpdateRecipeKnocksApprovedBackToPending(t *testing.T) {
	db := setupTestDB(t)

	created, _ := CreateRecipe(db, "user-1", validRecipeInput())
	if err := ApproveRecipe(db, created.ID); err != nil {
		t.Fatalf("ApproveRecipe failed: %v", err)
	}

	updated, err := UpdateRecipe(db, created.ID, "user-1", false, validRecipeInput())
	if err != nil {
		t.Fatalf("UpdateRecipe failed: %v", err)
	}
	if updated.Status != models.StatusPending {
		t.Errorf("Expected pending after owner edit, got %s", updated.Status)
	}
}

func TestUpdateRecipeReconcilesIngredients(t *testing.T) {
	db := setupTestDB(t)

	created, _ := CreateRecipe(db, "user-1", validRecipeInput())
	garlicLineID := created.Ingredients[0].RecipeIngredientID

	// Keep garlic (bumped to 3), drop butter, add salt.
	input := validRecipeInput()
	input.Ingredients = []IngredientInput{
		{RecipeIngredientID: garlicLineID, Name: "garlic", Quantity: 3, Unit: "clove", StoreSection: "PRODUCE"},
		{Name: "salt", Quantity: 1, Unit: "tsp", StoreSection: "SPICES"},
	}

	updated, err := UpdateRecipe(db, created.ID, "user-1", false, input)
	if err != nil {
		t.Fatalf("UpdateRecipe failed: %v", err)
	}
	if len(updated.Ingredients) != 2 {
		t.Fatalf("Expected 2 ingredients after reconcile, got %d", len(updated.Ingredients))
	}

	var count int64
	db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&count)
	if count != 2 {
		t.Errorf("Expected 2 lines in storage, got %d", count)
	}

	for _, ing := range updated.Ingredients {
		if ing.RecipeIngredientID == garlicLineID && ing.Quantity != 3 {
			t.Errorf("Expected garlic quantity 3, got %g", ing.Quantity)
		}
	}
}

func TestDeleteRecipe(t *testing.T) {
	db := setupTestDB(t)

	created, _ := CreateRecipe(db, "user-1", validRecipeInput())

	if err := DeleteRecipe(db, created.ID, "user-2", false); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
	if err := DeleteRecipe(db, created.ID, "user-1", false); err != nil {
		t.Fatalf("DeleteRecipe failed: %v", err)
	}
	if _, err := GetRecipe(db, created.ID, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	var lines int64
	db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&lines)
	if lines != 0 {
		t.Errorf("Expected ingredient lines removed, got %d", lines)
	}
}

func TestGetRecipeDisplayValues(t *testing.T) {
	db := setupTestDB(t)

	created, _ := CreateRecipe(db, "user-1", validRecipeInput())

	detail, err := GetRecipe(db, created.ID, false)
	if err != nil {
		t.Fatalf("GetRecipe failed: %v", err)
	}
	if detail.TotalTime != 25 {
		t.Errorf("Expected total time 25, got %d", detail.TotalTime)
	}

	for _, ing := range detail.Ingredients {
		if ing.Name == "butter" {
			// Stored as 8 tbsp; below a cup it displays in tablespoons.
			if ing.Formatted != "8 tbsps" {
				t.Errorf("Expected '8 tbsps', got %q", ing.Formatted)
			}
			// Raw authored values survive alongside the display rendering.
			if ing.Quantity != 0.5 || ing.Unit != "cup" {
				t.Errorf("Expected raw 0.5 cup, got %g %s", ing.Quantity, ing.Unit)
			}
		}
	}
}

func TestListStoreRecipes(t *testing.T) {
	db := setupTestDB(t)

	store, err := CreateStore(db, "Kroger", "")
	if err != nil {
		t.Fatalf("CreateStore failed: %v", err)
	}

	for i, title := range []string{"Fast Dinner Soup", "Slow Roast", "Veggie Stir Fry"} {
		input := validRecipeInput()
		input.Title = title
		input.CookTime = intptr((i + 1) * 10)
		input.IsVegetarian = i == 2
		input.StoreIDs = flexIDs(store.ID)

		created, err := CreateRecipe(db, "user-1", input)
		if err != nil {
			t.Fatalf("CreateRecipe failed: %v", err)
		}
		// Only the first two get approved.
		if i < 2 {
			if err := ApproveRecipe(db, created.ID); err != nil {
				t.Fatalf("ApproveRecipe failed: %v", err)
			}
		}
	}

	page, err := ListStoreRecipes(db, store.ID, &StoreRecipeQuery{Sort: "cooktime"})
	if err != nil {
		t.Fatalf("ListStoreRecipes failed: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("Expected 2 approved recipes, got %d", page.Total)
	}
	if page.Recipes[0].Title != "Fast Dinner Soup" {
		t.Errorf("Expected cooktime sort, got %s first", page.Recipes[0].Title)
	}

	// Search matches titles.
	page, err = ListStoreRecipes(db, store.ID, &StoreRecipeQuery{Search: "Roast"})
	if err != nil {
		t.Fatalf("ListStoreRecipes search failed: %v", err)
	}
	if page.Total != 1 || page.Recipes[0].Title != "Slow Roast" {
		t.Errorf("Expected only Slow Roast, got %v", page.Recipes)
	}

	// Unknown store is a not-found.
	if _, err := ListStoreRecipes(db, 9999, &StoreRecipeQuery{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListApprovedRecipes(t *testing.T) {
	db := setupTestDB(t)

	for i, title := range []string{"Meaty Chili", "Lentil Curry", "Secret Draft"} {
		input := validRecipeInput()
		input.Title = title
		input.IsVegetarian = i == 1

		created, err := CreateRecipe(db, "user-1", input)
		if err != nil {
			t.Fatalf("CreateRecipe failed: %v", err)
		}
		if i < 2 {
			if err := ApproveRecipe(db, created.ID); err != nil {
				t.Fatalf("ApproveRecipe failed: %v", err)
			}
		}
	}

	recipes, err := ListApprovedRecipes(db, nil)
	if err != nil {
		t.Fatalf("ListApprovedRecipes failed: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("Expected 2 approved recipes, got %d", len(recipes))
	}

	veg := true
	recipes, err = ListApprovedRecipes(db, &veg)
	if err != nil {
		t.Fatalf("ListApprovedRecipes vegetarian filter failed: %v", err)
	}
	if len(recipes) != 1 || recipes[0].Title != "Lentil Curry" {
		t.Errorf("Expected only Lentil Curry, got %v", recipes)
	}
}

func TestSuggestIngredients(t *testing.T) {
	db := setupTestDB(t)

	for _, name := range []string{"garlic", "garlic powder", "ginger", "onion"} {
		db.Create(&models.Ingredient{Name: name})
	}

	suggestions, err := SuggestIngredients(db, "gar")
	if err != nil {
		t.Fatalf("SuggestIngredients failed: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("Expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Name != "garlic" || suggestions[1].Name != "garlic powder" {
		t.Errorf("Expected alphabetical garlic suggestions, got %v", suggestions)
	}

	// Too-short queries return nothing rather than the whole table.
	suggestions, err = SuggestIngredients(db, "g")
	if err != nil {
		t.Fatalf("SuggestIngredients failed: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("Expected no suggestions for 1-char query, got %d", len(suggestions))
	}
}
