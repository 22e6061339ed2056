package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/models"
)

// ProfileView is the /me payload: the stored profile plus the user's own
// recipes as summaries.
type ProfileView struct {
	UserID       string          `json:"userId"`
	Name         string          `json:"name,omitempty"`
	Email        string          `json:"email,omitempty"`
	PreferMetric bool            `json:"preferMetric"`
	Recipes      []RecipeSummary `json:"recipes"`
}

// GetOrCreateProfile loads the local profile row for an Authorizer user,
// creating it on first sight. Name and email are refreshed from the
// session on every call so profile rows track the identity provider.
func GetOrCreateProfile(db *gorm.DB, userID, name, email string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{UserID: userID, Name: name, Email: email}
		if err := db.Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create user profile: %w", err)
		}
		return &profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}

	changed := false
	if name != "" && profile.Name != name {
		profile.Name = name
		changed = true
	}
	if email != "" && profile.Email != email {
		profile.Email = email
		changed = true
	}
	if changed {
		if err := db.Save(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to refresh user profile: %w", err)
		}
	}
	return &profile, nil
}

// GetProfile returns the full /me view.
func GetProfile(db *gorm.DB, userID, name, email string) (*ProfileView, error) {
	profile, err := GetOrCreateProfile(db, userID, name, email)
	if err != nil {
		return nil, err
	}

	recipes, err := ListUserRecipes(db, userID, nil)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		UserID:       profile.UserID,
		Name:         profile.Name,
		Email:        profile.Email,
		PreferMetric: profile.PreferMetric,
		Recipes:      recipes,
	}, nil
}

// SetPreferMetric stores the user's measurement preference.
func SetPreferMetric(db *gorm.DB, userID string, preferMetric bool) error {
	profile, err := GetOrCreateProfile(db, userID, "", "")
	if err != nil {
		return err
	}
	err = db.Model(profile).Update("prefer_metric", preferMetric).Error
	if err != nil {
		return fmt.Errorf("failed to update preference: %w", err)
	}
	return nil
}

// PreferMetricFor returns the user's stored preference, defaulting to
// imperial when no profile exists yet.
func PreferMetricFor(db *gorm.DB, userID string) bool {
	if userID == "" {
		return false
	}
	var profile models.UserProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return false
	}
	return profile.PreferMetric
}
