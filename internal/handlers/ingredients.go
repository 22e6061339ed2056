package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/services"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"
)

// IngredientHandler handles ingredient lookup routes
type IngredientHandler struct {
	DB *gorm.DB
}

// Suggest handles GET /api/ingredients/suggest
// @Summary Suggest ingredients
// @Description Autocomplete ingredient names by prefix, up to ten alphabetical matches
// @Tags Ingredients
// @Produce json
// @Param q query string true "Name prefix, at least 2 characters"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /ingredients/suggest [get]
func (h *IngredientHandler) Suggest(c *fiber.Ctx) error {
	ingredients, err := services.SuggestIngredients(h.DB, c.Query("q"))
	if err != nil {
		return serviceError(c, err, "Ingredients not found")
	}

	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		names = append(names, ing.Name)
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"suggestions": names})
}
