package models

import "time"

// Recipe courses.
const (
	CourseBreakfast = "BREAKFAST"
	CourseLunch     = "LUNCH"
	CourseDinner    = "DINNER"
	CourseSnackSide = "SNACK_SIDE"
)

// Recipe approval states. New recipes wait for admin approval before they
// appear in store listings.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Recipe is a user-authored recipe.
type Recipe struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	UserID       string `gorm:"type:char(36);not null;index"`
	Title        string `gorm:"size:255;not null"`
	Description  string `gorm:"size:1000"`
	Instructions string `gorm:"type:text;not null"`
	PrepTime     int    `gorm:"not null;default:0"`
	CookTime     int    `gorm:"not null;default:0"`
	Servings     int    `gorm:"not null"`
	Course       string `gorm:"size:32;not null"`
	ImageURL     string `gorm:"size:512"`
	IsVegetarian bool   `gorm:"not null;default:false"`
	Status       string `gorm:"size:16;not null;default:'pending';index:idx_recipes_status"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User        *UserProfile       `gorm:"foreignKey:UserID"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID"`
	Stores      []GroceryStore     `gorm:"many2many:recipe_stores;joinForeignKey:recipe_id;joinReferences:store_id"`
}

// Ingredient is a globally deduplicated ingredient name. Names are stored
// trimmed and lowercased so "Garlic " and "garlic" resolve to one row.
type Ingredient struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:255;not null;uniqueIndex"`
	CreatedAt time.Time
}

// RecipeIngredient links an ingredient to a recipe with its quantity.
//
// Quantity/Unit are the values the author typed. NormalizedQuantity and
// NormalizedUnit are the write-time base-unit conversion (tbsp for volume,
// oz for weight); they stay nil for count or unrecognized units. They are
// snapshots — a later change to the conversion tables does not rewrite
// them (cmd/normalize exists for backfills).
type RecipeIngredient struct {
	ID                 uint64   `gorm:"primaryKey;autoIncrement"`
	RecipeID           uint64   `gorm:"not null;index"`
	IngredientID       uint64   `gorm:"not null;index"`
	Quantity           float64  `gorm:"not null"`
	Unit               string   `gorm:"size:32"`
	NormalizedQuantity *float64 ``
	NormalizedUnit     *string  `gorm:"size:32"`
	StoreSection       string   `gorm:"size:32"`
	IsOptional         bool     `gorm:"not null;default:false"`
	Preparation        *string  `gorm:"size:255"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

// GroceryStore is a store recipes can be shopped at.
type GroceryStore struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:255;not null;uniqueIndex"`
	LogoURL   string `gorm:"size:512"`
	CreatedAt time.Time

	Recipes []Recipe `gorm:"many2many:recipe_stores;joinForeignKey:store_id;joinReferences:recipe_id"`
}

// RecipeStore is the recipe/store join row.
type RecipeStore struct {
	RecipeID uint64 `gorm:"primaryKey"`
	StoreID  uint64 `gorm:"primaryKey"`
}

// TableName overrides the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

// TableName overrides the table name for Ingredient
func (Ingredient) TableName() string {
	return "ingredients"
}

// TableName overrides the table name for RecipeIngredient
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

// TableName overrides the table name for GroceryStore
func (GroceryStore) TableName() string {
	return "grocery_stores"
}

// TableName overrides the table name for RecipeStore
func (RecipeStore) TableName() string {
	return "recipe_stores"
}
