package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/services"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"
)

// FeedbackHandler handles feedback submission
type FeedbackHandler struct {
	DB *gorm.DB
}

type feedbackRequest struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Create handles POST /api/feedback
// @Summary Submit feedback
// @Description Record a feedback entry from the authenticated user
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body handlers.feedbackRequest true "Feedback"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /feedback [post]
func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	feedback, err := services.CreateFeedback(h.DB, getUserID(c), req.Type, req.Message)
	if err != nil {
		return serviceError(c, err, "Feedback not found")
	}
	return utils.DataResponse(c, fiber.StatusCreated, fiber.Map{"id": feedback.ID})
}
