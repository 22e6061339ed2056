package models

import "time"

// UserProfile holds the app-side data for an Authorizer user. Identity,
// credentials and roles live in the Authorizer service; this row carries
// only what PrepMyWeek needs, keyed by the Authorizer user ID.
type UserProfile struct {
	UserID       string `gorm:"type:char(36);primaryKey"`
	Name         string `gorm:"size:255"`
	Email        string `gorm:"size:255;index"`
	PreferMetric bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Recipes      []Recipe `gorm:"foreignKey:UserID"`
}

// TableName overrides the table name for UserProfile
func (UserProfile) TableName() string {
	return "user_profiles"
}
