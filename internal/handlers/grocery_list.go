package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/services"
	"github.com/prepmyweek/prepmyweek-api/internal/types"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"
)

// GroceryListHandler handles grocery list generation
type GroceryListHandler struct {
	DB *gorm.DB
}

// groceryListRequest is the POST body. Recipe IDs arrive as numbers,
// strings, or a single bare value depending on frontend version.
type groceryListRequest struct {
	RecipeIDs    types.FlexList[types.FlexUint64] `json:"recipeIds"`
	PreferMetric *bool                            `json:"preferMetric"`
}

// Generate handles POST /api/grocery-list
// @Summary Generate a grocery list
// @Description Merge the ingredients of the given recipes into a grocery list grouped by store section
// @Tags GroceryList
// @Accept json
// @Produce json
// @Param request body handlers.groceryListRequest true "Recipe IDs and display preference"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /grocery-list [post]
func (h *GroceryListHandler) Generate(c *fiber.Ctx) error {
	var req groceryListRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if len(req.RecipeIDs) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "recipeIds is required")
	}

	preferMetric := resolvePreferMetric(c, h.DB, req.PreferMetric)
	list, err := services.GenerateGroceryList(h.DB, types.Uint64Slice(req.RecipeIDs), preferMetric)
	if err != nil {
		return serviceError(c, err, "No recipes found for the given ids")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"groceryList": list})
}
