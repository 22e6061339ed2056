package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/prepmyweek/prepmyweek-api/internal/models"
	"github.com/prepmyweek/prepmyweek-api/internal/types"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"
)

// IngredientInput is one submitted ingredient line.
type IngredientInput struct {
	RecipeIngredientID uint64  `json:"recipeIngredientId,omitempty"`
	Name               string  `json:"name"`
	Quantity           float64 `json:"quantity"`
	Unit               string  `json:"unit,omitempty"`
	StoreSection       string  `json:"storeSection,omitempty"`
	IsOptional         bool    `json:"isOptional,omitempty"`
	Preparation        *string `json:"preparation,omitempty"`
}

// RecipeInput is the create/update request body. PrepTime, CookTime and
// Servings are pointers so a missing field is distinguishable from zero,
// matching the Node API's validation messages.
type RecipeInput struct {
	Title        string                           `json:"title"`
	Description  string                           `json:"description,omitempty"`
	Instructions string                           `json:"instructions"`
	PrepTime     *int                             `json:"prepTime"`
	CookTime     *int                             `json:"cookTime"`
	Servings     *int                             `json:"servings"`
	Course       string                           `json:"course"`
	StoreIDs     types.FlexList[types.FlexUint64] `json:"storeIds,omitempty"`
	Ingredients  []IngredientInput                `json:"ingredients,omitempty"`
	ImageURL     string                           `json:"imageUrl,omitempty"`
	IsVegetarian bool                             `json:"isVegetarian,omitempty"`
}

var validCourses = []string{
	models.CourseBreakfast,
	models.CourseLunch,
	models.CourseDinner,
	models.CourseSnackSide,
}

// ingredientNamePattern limits names to letters, digits, spaces, hyphens
// and apostrophes.
var ingredientNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-']+$`)

// Validate checks a RecipeInput and returns the collected field issues,
// mirroring the Zod schema of the Node API.
func (in *RecipeInput) Validate() []utils.FieldIssue {
	var issues []utils.FieldIssue
	add := func(path, message string) {
		issues = append(issues, utils.FieldIssue{Path: path, Message: message})
	}

	if len(strings.TrimSpace(in.Title)) < 3 {
		add("title", "Title must be at least 3 characters")
	}
	if len(in.Description) > 1000 {
		add("description", "Description must be under 1000 characters")
	}
	if len(strings.TrimSpace(in.Instructions)) < 5 {
		add("instructions", "Instructions must be at least 5 characters")
	}
	if in.PrepTime == nil {
		add("prepTime", "Prep time is required and can be zero")
	} else if *in.PrepTime < 0 {
		add("prepTime", "Prep time cannot be negative")
	}
	if in.CookTime == nil {
		add("cookTime", "Cook time is required and can be zero")
	} else if *in.CookTime < 0 {
		add("cookTime", "Cook time cannot be negative")
	}
	if in.Servings == nil {
		add("servings", "Servings is a required field")
	} else if *in.Servings <= 0 {
		add("servings", "Servings must be a positive number")
	}
	if in.Course == "" {
		add("course", "Course is a required field")
	} else if !isValidCourse(in.Course) {
		add("course", fmt.Sprintf("Course must be one of: %s", strings.Join(validCourses, ", ")))
	}

	for i, ing := range in.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if len(name) < 2 {
			add(fmt.Sprintf("ingredients.%d.name", i), "Ingredient name must be at least 2 characters")
		} else if !validIngredientName(normalizeIngredientName(name)) {
			add(fmt.Sprintf("ingredients.%d.name", i), "Ingredient name may only contain letters, numbers, spaces, hyphens and apostrophes")
		}
		if ing.Quantity <= 0 {
			add(fmt.Sprintf("ingredients.%d.quantity", i), "Quantity must be a positive number")
		}
	}

	return issues
}

func isValidCourse(course string) bool {
	for _, c := range validCourses {
		if c == course {
			return true
		}
	}
	return false
}

// normalizeIngredientName canonicalizes a submitted ingredient name so
// casing and curly apostrophes don't split one ingredient into several
// rows.
func normalizeIngredientName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(n, "’", "'")
}

// validIngredientName enforces the stricter rules applied when renaming
// existing ingredient rows.
func validIngredientName(name string) bool {
	return len(name) >= 2 && len(name) <= 50 && ingredientNamePattern.MatchString(name)
}
