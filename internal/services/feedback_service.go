package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/models"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"
)

// CreateFeedback records a feedback entry for the user.
func CreateFeedback(db *gorm.DB, userID, feedbackType, message string) (*models.Feedback, error) {
	var issues []utils.FieldIssue
	if !isValidFeedbackType(feedbackType) {
		issues = append(issues, utils.FieldIssue{
			Path:    "type",
			Message: fmt.Sprintf("Type must be one of: %s", strings.Join(models.FeedbackTypes, ", ")),
		})
	}
	if len(strings.TrimSpace(message)) < 5 {
		issues = append(issues, utils.FieldIssue{
			Path:    "message",
			Message: "Message must be at least 5 characters",
		})
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}

	feedback := models.Feedback{
		UserID:  userID,
		Type:    feedbackType,
		Message: strings.TrimSpace(message),
	}
	if err := db.Create(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return &feedback, nil
}

// ListFeedback returns all feedback entries, newest first, with the
// submitting user preloaded. Admin only.
func ListFeedback(db *gorm.DB) ([]models.Feedback, error) {
	var entries []models.Feedback
	err := db.
		Preload("User").
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return entries, nil
}

// DeleteFeedback removes a feedback entry. Admin only.
func DeleteFeedback(db *gorm.DB, feedbackID uint64) error {
	var feedback models.Feedback
	if err := db.First(&feedback, feedbackID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load feedback: %w", err)
	}
	if err := db.Delete(&feedback).Error; err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	return nil
}

func isValidFeedbackType(t string) bool {
	for _, valid := range models.FeedbackTypes {
		if t == valid {
			return true
		}
	}
	return false
}
