package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/prepmyweek/prepmyweek-api/internal/services"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"
)

// RecipeHandler handles recipe routes
type RecipeHandler struct {
	DB *gorm.DB
}

// ListRecipes handles GET /api/recipes
// @Summary List approved recipes
// @Description List all approved recipes, newest first
// @Tags Recipes
// @Produce json
// @Param vegetarian query bool false "Only vegetarian recipes"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes [get]
func (h *RecipeHandler) ListRecipes(c *fiber.Ctx) error {
	recipes, err := services.ListApprovedRecipes(h.DB, queryBool(c, "vegetarian"))
	if err != nil {
		return serviceError(c, err, "Recipes not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"recipes": recipes})
}

// GetRecipe handles GET /api/recipes/:id
// @Summary Get a recipe
// @Description Get one recipe with stores and ingredient display values
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Param metric query bool false "Prefer metric display units"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [get]
func (h *RecipeHandler) GetRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid recipe id")
	}

	preferMetric := resolvePreferMetric(c, h.DB, nil)
	recipe, err := services.GetRecipe(h.DB, id, preferMetric)
	if err != nil {
		return serviceError(c, err, "Recipe not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, recipe)
}

// ListMyRecipes handles GET /api/recipes/mine
// @Summary List own recipes
// @Description List the authenticated user's recipes, newest first
// @Tags Recipes
// @Produce json
// @Param vegetarian query bool false "Only vegetarian recipes"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes/mine [get]
func (h *RecipeHandler) ListMyRecipes(c *fiber.Ctx) error {
	recipes, err := services.ListUserRecipes(h.DB, getUserID(c), queryBool(c, "vegetarian"))
	if err != nil {
		return serviceError(c, err, "Recipes not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"recipes": recipes})
}

// CreateRecipe handles POST /api/recipes
// @Summary Create a recipe
// @Description Submit a new recipe; it stays pending until approved
// @Tags Recipes
// @Accept json
// @Produce json
// @Param recipe body services.RecipeInput true "Recipe"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /recipes [post]
func (h *RecipeHandler) CreateRecipe(c *fiber.Ctx) error {
	var input services.RecipeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	recipe, err := services.CreateRecipe(h.DB, getUserID(c), &input)
	if err != nil {
		return serviceError(c, err, "Recipe not found")
	}
	return utils.DataResponse(c, fiber.StatusCreated, recipe)
}

// UpdateRecipe handles PUT /api/recipes/:id
// @Summary Update a recipe
// @Description Replace a recipe's fields, stores and ingredients; owner or admin only
// @Tags Recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body services.RecipeInput true "Recipe"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [put]
func (h *RecipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid recipe id")
	}

	var input services.RecipeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	recipe, err := services.UpdateRecipe(h.DB, id, getUserID(c), isAdmin(c), &input)
	if err != nil {
		return serviceError(c, err, "Recipe not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id
// @Summary Delete a recipe
// @Description Delete a recipe and its ingredient lines; owner or admin only
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid recipe id")
	}

	if err := services.DeleteRecipe(h.DB, id, getUserID(c), isAdmin(c)); err != nil {
		return serviceError(c, err, "Recipe not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"deleted": id})
}

// DeleteRecipeIngredient handles DELETE /api/recipe-ingredients/:id
// @Summary Delete one ingredient line
// @Description Remove a single ingredient line from a recipe; owner or admin only
// @Tags Recipes
// @Produce json
// @Param id path int true "Recipe ingredient ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipe-ingredients/{id} [delete]
func (h *RecipeHandler) DeleteRecipeIngredient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid recipe ingredient id")
	}

	if err := services.DeleteRecipeIngredient(h.DB, id, getUserID(c), isAdmin(c)); err != nil {
		return serviceError(c, err, "Recipe ingredient not found")
	}
	return utils.DataResponse(c, fiber.StatusOK, fiber.Map{"deleted": id})
}
