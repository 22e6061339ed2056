package services

import (
	"errors"
	"testing"

	"github.com/prepmyweek/prepmyweek-api/internal/models"
)

func TestApprovalFlow(t *testing.T) {
	db := setupTestDB(t)

	var ids []uint64
	for _, title := range []string{"First", "Second", "Third"} {
		input := validRecipeInput()
		input.Title = title + " Recipe"
		created, err := CreateRecipe(db, "user-1", input)
		if err != nil {
			t.Fatalf("CreateRecipe failed: %v", err)
		}
		ids = append(ids, created.ID)
	}

	count, err := CountPendingRecipes(db)
	if err != nil {
		t.Fatalf("CountPendingRecipes failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("Expected 3 pending, got %d", count)
	}

	// The queue lists oldest first.
	pending, err := ListPendingRecipes(db)
	if err != nil {
		t.Fatalf("ListPendingRecipes failed: %v", err)
	}
	if pending[0].Title != "First Recipe" {
		t.Errorf("Expected oldest first, got %s", pending[0].Title)
	}

	// Batch approval flips only pending rows and reports the count.
	approved, err := ApproveRecipes(db, []uint64{ids[0], ids[1], 99999})
	if err != nil {
		t.Fatalf("ApproveRecipes failed: %v", err)
	}
	if approved != 2 {
		t.Errorf("Expected 2 approved, got %d", approved)
	}

	// Re-approving already-approved rows flips nothing.
	approved, _ = ApproveRecipes(db, []uint64{ids[0], ids[1]})
	if approved != 0 {
		t.Errorf("Expected 0 re-approved, got %d", approved)
	}

	count, _ = CountPendingRecipes(db)
	if count != 1 {
		t.Errorf("Expected 1 pending left, got %d", count)
	}

	all, err := ListAllRecipes(db)
	if err != nil {
		t.Fatalf("ListAllRecipes failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected all 3 recipes regardless of status, got %d", len(all))
	}
}

func TestRejectRecipe(t *testing.T) {
	db := setupTestDB(t)

	created, _ := CreateRecipe(db, "user-1", validRecipeInput())

	if err := RejectRecipe(db, created.ID); err != nil {
		t.Fatalf("RejectRecipe failed: %v", err)
	}
	if _, err := GetRecipe(db, created.ID, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected recipe gone after rejection, got %v", err)
	}

	var lines int64
	db.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&lines)
	if lines != 0 {
		t.Errorf("Expected ingredient lines removed, got %d", lines)
	}

	if err := RejectRecipe(db, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing recipe, got %v", err)
	}
}

func TestFeedbackFlow(t *testing.T) {
	db := setupTestDB(t)

	var verr *ValidationError
	if _, err := CreateFeedback(db, "user-1", "Rant", "This is fine"); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for bad type, got %v", err)
	}
	if _, err := CreateFeedback(db, "user-1", "Bug", "meh"); !errors.As(err, &verr) {
		t.Errorf("Expected ValidationError for short message, got %v", err)
	}

	created, err := CreateFeedback(db, "user-1", "Bug", "The grocery list drops my garlic")
	if err != nil {
		t.Fatalf("CreateFeedback failed: %v", err)
	}

	entries, err := ListFeedback(db)
	if err != nil {
		t.Fatalf("ListFeedback failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != created.ID {
		t.Fatalf("Expected one entry, got %v", entries)
	}

	if err := DeleteFeedback(db, created.ID); err != nil {
		t.Fatalf("DeleteFeedback failed: %v", err)
	}
	if err := DeleteFeedback(db, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUserPreferences(t *testing.T) {
	db := setupTestDB(t)

	// Unknown users default to imperial.
	if PreferMetricFor(db, "user-1") {
		t.Error("Expected imperial default")
	}

	if err := SetPreferMetric(db, "user-1", true); err != nil {
		t.Fatalf("SetPreferMetric failed: %v", err)
	}
	if !PreferMetricFor(db, "user-1") {
		t.Error("Expected metric after update")
	}

	profile, err := GetProfile(db, "user-1", "Sam", "sam@example.com")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if !profile.PreferMetric || profile.Name != "Sam" {
		t.Errorf("Expected refreshed profile with metric on, got %+v", profile)
	}
}
