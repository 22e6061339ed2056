package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/services"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"
)

// UserHandler handles user profile routes
type UserHandler struct {
	DB *gorm.DB
}

// GetMe handles GET /api/users/me
// @Summary Get own profile
// @Description Get the authenticated user's profile and recipes
// @Tags Users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	profile, err := services.GetProfile(h.DB, getUserID(c), getUserField(c, "nickname"), getUserField(c, "email"))
	if err != nil {
		return serviceError(c, err, "Profile not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, profile)
}

type preferencesRequest struct {
	PreferMetric bool `json:"preferMetric"`
}

// UpdatePreferences handles PUT /api/users/me/preferences
// @Summary Update preferences
// @Description Set the user's preferred measurement system
// @Tags Users
// @Accept json
// @Produce json
// @Param request body handlers.preferencesRequest true "Preferences"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /users/me/preferences [put]
func (h *UserHandler) UpdatePreferences(c *fiber.Ctx) error {
	var req preferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := services.SetPreferMetric(h.DB, getUserID(c), req.PreferMetric); err != nil {
		return serviceError(c, err, "Profile not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"preferMetric": req.PreferMetric})
}
