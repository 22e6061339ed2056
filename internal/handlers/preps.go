package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/services"
	"github.com/prepmyweek/prepmyweek-api/internal/types"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"
)

// PrepHandler handles current and past prep routes
type PrepHandler struct {
	DB *gorm.DB
}

type savePrepRequest struct {
	RecipeIDs types.FlexList[types.FlexUint64] `json:"recipeIds"`
	Name      string                           `json:"name"`
}

// GetCurrent handles GET /api/preps/current
// @Summary Get the current prep
// @Description Get the user's working recipe set, hydrated with recipe details
// @Tags Preps
// @Produce json
// @Param metric query bool false "Prefer metric display units"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /preps/current [get]
func (h *PrepHandler) GetCurrent(c *fiber.Ctx) error {
	preferMetric := resolvePreferMetric(c, h.DB, nil)
	prep, err := services.GetCurrentPrep(h.DB, getUserID(c), preferMetric)
	if err != nil {
		return serviceError(c, err, "Current prep not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, prep)
}

// SaveCurrent handles PUT /api/preps/current
// @Summary Save the current prep
// @Description Replace the user's working recipe set
// @Tags Preps
// @Accept json
// @Produce json
// @Param request body handlers.savePrepRequest true "Recipe IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /preps/current [put]
func (h *PrepHandler) SaveCurrent(c *fiber.Ctx) error {
	var req savePrepRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := services.SaveCurrentPrep(h.DB, getUserID(c), types.Uint64Slice(req.RecipeIDs)); err != nil {
		return serviceError(c, err, "Current prep not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"saved": len(req.RecipeIDs)})
}

// ClearCurrent handles DELETE /api/preps/current
// @Summary Clear the current prep
// @Description Remove the user's working recipe set
// @Tags Preps
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /preps/current [delete]
func (h *PrepHandler) ClearCurrent(c *fiber.Ctx) error {
	if err := services.ClearCurrentPrep(h.DB, getUserID(c)); err != nil {
		return serviceError(c, err, "Current prep not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"cleared": true})
}

// CreatePast handles POST /api/preps/past
// @Summary Archive a prep
// @Description Save a named set of recipes to the prep archive
// @Tags Preps
// @Accept json
// @Produce json
// @Param request body handlers.savePrepRequest true "Name and recipe IDs"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /preps/past [post]
func (h *PrepHandler) CreatePast(c *fiber.Ctx) error {
	var req savePrepRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.RecipeIDs) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "recipeIds is required")
	}

	prep, err := services.CreatePastPrep(h.DB, getUserID(c), req.Name, types.Uint64Slice(req.RecipeIDs))
	if err != nil {
		return serviceError(c, err, "Past prep not found")
	}
	return utils.DataResponse(c, fiber.StatusCreated, fiber.Map{"id": prep.ID, "name": prep.Name})
}

// ListPast handles GET /api/preps/past
// @Summary List archived preps
// @Description List the user's archived preps, newest first
// @Tags Preps
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /preps/past [get]
func (h *PrepHandler) ListPast(c *fiber.Ctx) error {
	preps, err := services.ListPastPreps(h.DB, getUserID(c))
	if err != nil {
		return serviceError(c, err, "Past preps not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"preps": preps})
}

// GetPast handles GET /api/preps/past/:id
// @Summary Get an archived prep
// @Description Get one archived prep with its recipes; owner only
// @Tags Preps
// @Produce json
// @Param id path int true "Past prep ID"
// @Param metric query bool false "Prefer metric display units"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /preps/past/{id} [get]
func (h *PrepHandler) GetPast(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid prep id")
	}

	preferMetric := resolvePreferMetric(c, h.DB, nil)
	prep, err := services.GetPastPrep(h.DB, id, getUserID(c), preferMetric)
	if err != nil {
		return serviceError(c, err, "Past prep not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, prep)
}

// DeletePast handles DELETE /api/preps/past/:id
// @Summary Delete an archived prep
// @Description Remove one archived prep; owner only
// @Tags Preps
// @Produce json
// @Param id path int true "Past prep ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /preps/past/{id} [delete]
func (h *PrepHandler) DeletePast(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid prep id")
	}

	if err := services.DeletePastPrep(h.DB, id, getUserID(c)); err != nil {
		return serviceError(c, err, "Past prep not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"deleted": id})
}

// UsePast handles POST /api/preps/past/:id/use
// @Summary Reuse an archived prep
// @Description Copy an archived prep's recipes into the current prep; owner only
// @Tags Preps
// @Produce json
// @Param id path int true "Past prep ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /preps/past/{id}/use [post]
func (h *PrepHandler) UsePast(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid prep id")
	}

	if err := services.SetPastPrepAsCurrent(h.DB, id, getUserID(c)); err != nil {
		return serviceError(c, err, "Past prep not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"currentPrepSet": true})
}
