package models

import "time"

// Feedback categories.
var FeedbackTypes = []string{"Bug", "FeatureRequest", "StoreRequest", "Other"}

// Feedback is a user-submitted feedback entry, listed and pruned by admins.
type Feedback struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"type:char(36);not null;index"`
	Type      string `gorm:"size:32;not null"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time

	User *UserProfile `gorm:"foreignKey:UserID"`
}

// TableName overrides the table name for Feedback
func (Feedback) TableName() string {
	return "feedback"
}
