package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/services"
	"github.com/prepmyweek/prepmyweek-api/internal/types"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"
)

// AdminHandler handles admin routes
type AdminHandler struct {
	DB *gorm.DB
}

// ListAllRecipes handles GET /api/admin/recipes
// @Summary List all recipes
// @Description List every recipe regardless of status
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/recipes [get]
func (h *AdminHandler) ListAllRecipes(c *fiber.Ctx) error {
	recipes, err := services.ListAllRecipes(h.DB)
	if err != nil {
		return serviceError(c, err, "Recipes not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"recipes": recipes})
}

// ListPendingRecipes handles GET /api/admin/recipes/pending
// @Summary List pending recipes
// @Description List recipes awaiting review, oldest first
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/recipes/pending [get]
func (h *AdminHandler) ListPendingRecipes(c *fiber.Ctx) error {
	recipes, err := services.ListPendingRecipes(h.DB)
	if err != nil {
		return serviceError(c, err, "Recipes not found")
	}

	count, err := services.CountPendingRecipes(h.DB)
	if err != nil {
		return serviceError(c, err, "Recipes not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"recipes": recipes, "pendingCount": count})
}

// ApproveRecipe handles POST /api/admin/recipes/:id/approve
// @Summary Approve a recipe
// @Description Mark one pending recipe approved
// @Tags Admin
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/recipes/{id}/approve [post]
func (h *AdminHandler) ApproveRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid recipe id")
	}

	if err := services.ApproveRecipe(h.DB, id); err != nil {
		return serviceError(c, err, "Recipe not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"approved": id})
}

// ApproveRecipes handles POST /api/admin/recipes/approve
// @Summary Approve multiple recipes
// @Description Approve a batch of pending recipes, returning how many flipped
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body handlers.approveRequest true "Recipe IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /admin/recipes/approve [post]
func (h *AdminHandler) ApproveRecipes(c *fiber.Ctx) error {
	var req approveRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.RecipeIDs) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "recipeIds is required")
	}

	count, err := services.ApproveRecipes(h.DB, types.Uint64Slice(req.RecipeIDs))
	if err != nil {
		return serviceError(c, err, "Recipes not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"approvedCount": count})
}

type approveRequest struct {
	RecipeIDs types.FlexList[types.FlexUint64] `json:"recipeIds"`
}

// RejectRecipe handles DELETE /api/admin/recipes/:id
// @Summary Reject a recipe
// @Description Delete a submitted recipe outright
// @Tags Admin
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/recipes/{id} [delete]
func (h *AdminHandler) RejectRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid recipe id")
	}

	if err := services.RejectRecipe(h.DB, id); err != nil {
		return serviceError(c, err, "Recipe not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"rejected": id})
}

// CreateStore handles POST /api/admin/stores
// @Summary Create a store
// @Description Add a grocery store
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body handlers.storeRequest true "Store"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /admin/stores [post]
func (h *AdminHandler) CreateStore(c *fiber.Ctx) error {
	var req storeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	store, err := services.CreateStore(h.DB, req.Name, req.LogoURL)
	if err != nil {
		return serviceError(c, err, "Store not found")
	}
	return utils.DataResponse(c, fiber.StatusCreated, store)
}

type storeRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

// DeleteStore handles DELETE /api/admin/stores/:id
// @Summary Delete a store
// @Description Remove a store that has no linked recipes
// @Tags Admin
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /admin/stores/{id} [delete]
func (h *AdminHandler) DeleteStore(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid store id")
	}

	if err := services.DeleteStore(h.DB, id); err != nil {
		return serviceError(c, err, "Store not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"deleted": id})
}

// ListFeedback handles GET /api/admin/feedback
// @Summary List feedback
// @Description List all feedback entries, newest first
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /admin/feedback [get]
func (h *AdminHandler) ListFeedback(c *fiber.Ctx) error {
	entries, err := services.ListFeedback(h.DB)
	if err != nil {
		return serviceError(c, err, "Feedback not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"feedback": entries})
}

// DeleteFeedback handles DELETE /api/admin/feedback/:id
// @Summary Delete feedback
// @Description Remove one feedback entry
// @Tags Admin
// @Produce json
// @Param id path int true "Feedback ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /admin/feedback/{id} [delete]
func (h *AdminHandler) DeleteFeedback(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid feedback id")
	}

	if err := services.DeleteFeedback(h.DB, id); err != nil {
		return serviceError(c, err, "Feedback not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"deleted": id})
}
