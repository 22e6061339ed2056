package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/services"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"
)

// StoreHandler handles grocery store routes
type StoreHandler struct {
	DB *gorm.DB
}

// ListStores handles GET /api/stores
// @Summary List stores
// @Description List all grocery stores with their approved recipe counts
// @Tags Stores
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /stores [get]
func (h *StoreHandler) ListStores(c *fiber.Ctx) error {
	stores, err := services.ListStoresWithRecipeCount(h.DB)
	if err != nil {
		return serviceError(c, err, "Stores not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"stores": stores})
}

// ListStoreRecipes handles GET /api/stores/:id/recipes
// @Summary List a store's recipes
// @Description List the approved recipes shoppable at a store, filtered, sorted and paged
// @Tags Stores
// @Produce json
// @Param id path int true "Store ID"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size (max 100)"
// @Param search query string false "Match against title and instructions"
// @Param vegetarian query bool false "Only vegetarian recipes"
// @Param courses query string false "Comma-separated course filter"
// @Param sort query string false "newest | ingredients | cooktime"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /stores/{id}/recipes [get]
func (h *StoreHandler) ListStoreRecipes(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid store id")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	query := services.StoreRecipeQuery{
		Page:       page,
		Limit:      limit,
		Search:     c.Query("search"),
		Vegetarian: queryBool(c, "vegetarian"),
		Courses:    queryCSV(c, "courses"),
		Sort:       c.Query("sort", "newest"),
	}

	recipes, err := services.ListStoreRecipes(h.DB, id, &query)
	if err != nil {
		return serviceError(c, err, "Store not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, recipes)
}
