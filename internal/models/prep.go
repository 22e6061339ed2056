package models

import (
	"time"

	"gorm.io/datatypes"
)

// CurrentPrep is a user's working set of recipes for the week. One row per
// user; the recipe IDs live in a JSON column since the set is replaced
// wholesale on every save.
type CurrentPrep struct {
	ID        uint64                      `gorm:"primaryKey;autoIncrement"`
	UserID    string                      `gorm:"type:char(36);not null;uniqueIndex"`
	RecipeIDs datatypes.JSONSlice[uint64] `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PastPrep is a named, archived prep. Unlike CurrentPrep it keeps proper
// join rows so recipes can be traced back.
type PastPrep struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"type:char(36);not null;index"`
	Name      string `gorm:"size:255;not null"`
	CreatedAt time.Time

	Recipes []PastPrepRecipe `gorm:"foreignKey:PastPrepID;constraint:OnDelete:CASCADE"`
}

// PastPrepRecipe is the past-prep/recipe join row.
type PastPrepRecipe struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	PastPrepID uint64 `gorm:"not null;index"`
	RecipeID   uint64 `gorm:"not null"`
}

// TableName overrides the table name for CurrentPrep
func (CurrentPrep) TableName() string {
	return "current_preps"
}

// TableName overrides the table name for PastPrep
func (PastPrep) TableName() string {
	return "past_preps"
}

// TableName overrides the table name for PastPrepRecipe
func (PastPrepRecipe) TableName() string {
	return "past_prep_recipes"
}
