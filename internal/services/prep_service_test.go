package services

import (
	"errors"
	"testing"
)

func TestCurrentPrepLifecycle(t *testing.T) {
	db := setupTestDB(t)

	r1, _ := CreateRecipe(db, "user-1", validRecipeInput())
	input := validRecipeInput()
	input.Title = "Second Recipe"
	r2, _ := CreateRecipe(db, "user-1", input)

	// No prep yet: empty view, not an error.
	view, err := GetCurrentPrep(db, "user-1", false)
	if err != nil {
		t.Fatalf("GetCurrentPrep failed: %v", err)
	}
	if len(view.RecipeIDs) != 0 || len(view.Recipes) != 0 {
		t.Errorf("Expected empty prep, got %v", view)
	}

	if err := SaveCurrentPrep(db, "user-1", []uint64{r1.ID, r2.ID}); err != nil {
		t.Fatalf("SaveCurrentPrep failed: %v", err)
	}

	view, err = GetCurrentPrep(db, "user-1", false)
	if err != nil {
		t.Fatalf("GetCurrentPrep failed: %v", err)
	}
	if len(view.Recipes) != 2 {
		t.Fatalf("Expected 2 hydrated recipes, got %d", len(view.Recipes))
	}
	if view.Recipes[0].ID != r1.ID || view.Recipes[1].ID != r2.ID {
		t.Error("Expected recipes in saved order")
	}

	// Saving again replaces rather than appends.
	if err := SaveCurrentPrep(db, "user-1", []uint64{r2.ID}); err != nil {
		t.Fatalf("SaveCurrentPrep replace failed: %v", err)
	}
	view, _ = GetCurrentPrep(db, "user-1", false)
	if len(view.RecipeIDs) != 1 || view.RecipeIDs[0] != r2.ID {
		t.Errorf("Expected prep replaced with one recipe, got %v", view.RecipeIDs)
	}

	if err := ClearCurrentPrep(db, "user-1"); err != nil {
		t.Fatalf("ClearCurrentPrep failed: %v", err)
	}
	view, _ = GetCurrentPrep(db, "user-1", false)
	if len(view.RecipeIDs) != 0 {
		t.Errorf("Expected cleared prep, got %v", view.RecipeIDs)
	}
}

func TestCurrentPrepDropsDeletedRecipes(t *testing.T) {
	db := setupTestDB(t)

	r1, _ := CreateRecipe(db, "user-1", validRecipeInput())
	input := validRecipeInput()
	input.Title = "Doomed Recipe"
	r2, _ := CreateRecipe(db, "user-1", input)

	SaveCurrentPrep(db, "user-1", []uint64{r1.ID, r2.ID})
	if err := DeleteRecipe(db, r2.ID, "user-1", false); err != nil {
		t.Fatalf("DeleteRecipe failed: %v", err)
	}

	view, err := GetCurrentPrep(db, "user-1", false)
	if err != nil {
		t.Fatalf("GetCurrentPrep failed: %v", err)
	}
	// The ID list keeps the stale entry, hydration drops it.
	if len(view.RecipeIDs) != 2 {
		t.Errorf("Expected 2 saved IDs, got %d", len(view.RecipeIDs))
	}
	if len(view.Recipes) != 1 {
		t.Errorf("Expected 1 surviving recipe, got %d", len(view.Recipes))
	}
}

func TestPastPrepLifecycle(t *testing.T) {
	db := setupTestDB(t)

	r1, _ := CreateRecipe(db, "user-1", validRecipeInput())

	prep, err := CreatePastPrep(db, "user-1", "Week of July 4", []uint64{r1.ID})
	if err != nil {
		t.Fatalf("CreatePastPrep failed: %v", err)
	}

	summaries, err := ListPastPreps(db, "user-1")
	if err != nil {
		t.Fatalf("ListPastPreps failed: %v", err)
	}
	if len(summaries) != 1 || summaries[0].RecipeCount != 1 {
		t.Fatalf("Expected one summary with one recipe, got %v", summaries)
	}

	// Ownership is enforced on read and delete.
	if _, err := GetPastPrep(db, prep.ID, "user-2", false); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
	if err := DeletePastPrep(db, prep.ID, "user-2"); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}

	detail, err := GetPastPrep(db, prep.ID, "user-1", false)
	if err != nil {
		t.Fatalf("GetPastPrep failed: %v", err)
	}
	if len(detail.Recipes) != 1 || detail.Recipes[0].ID != r1.ID {
		t.Errorf("Expected hydrated recipe, got %v", detail.Recipes)
	}

	if err := DeletePastPrep(db, prep.ID, "user-1"); err != nil {
		t.Fatalf("DeletePastPrep failed: %v", err)
	}
	if _, err := GetPastPrep(db, prep.ID, "user-1", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestCreatePastPrepDefaultName(t *testing.T) {
	db := setupTestDB(t)

	r1, _ := CreateRecipe(db, "user-1", validRecipeInput())
	prep, err := CreatePastPrep(db, "user-1", "", []uint64{r1.ID})
	if err != nil {
		t.Fatalf("CreatePastPrep failed: %v", err)
	}
	if prep.Name == "" {
		t.Error("Expected a generated default name")
	}
}

func TestSetPastPrepAsCurrent(t *testing.T) {
	db := setupTestDB(t)

	r1, _ := CreateRecipe(db, "user-1", validRecipeInput())
	prep, _ := CreatePastPrep(db, "user-1", "Reuse me", []uint64{r1.ID})

	if err := SetPastPrepAsCurrent(db, prep.ID, "user-2"); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
	if err := SetPastPrepAsCurrent(db, prep.ID, "user-1"); err != nil {
		t.Fatalf("SetPastPrepAsCurrent failed: %v", err)
	}

	view, _ := GetCurrentPrep(db, "user-1", false)
	if len(view.RecipeIDs) != 1 || view.RecipeIDs[0] != r1.ID {
		t.Errorf("Expected current prep set from archive, got %v", view.RecipeIDs)
	}
}
