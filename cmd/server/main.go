package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/prepmyweek/prepmyweek-api/internal/config"
	"github.com/prepmyweek/prepmyweek-api/internal/database"
	"github.com/prepmyweek/prepmyweek-api/internal/handlers"
	"github.com/prepmyweek/prepmyweek-api/internal/middleware"
	"github.com/prepmyweek/prepmyweek-api/internal/services"
	"github.com/prepmyweek/prepmyweek-api/internal/types"
	"github.com/prepmyweek/prepmyweek-api/internal/utils"

	_ "github.com/prepmyweek/prepmyweek-api/docs/api" // Swagger docs
)

// @title PrepMyWeek API
// @version 1.0.0
// @description Meal planning backend: recipes, weekly preps and aggregated grocery lists
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/prepmyweek/prepmyweek-api

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
		AllowCredentials: true,
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("prepmyweek")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	recipeHandler := &handlers.RecipeHandler{DB: db}
	groceryHandler := &handlers.GroceryListHandler{DB: db}
	prepHandler := &handlers.PrepHandler{DB: db}
	storeHandler := &handlers.StoreHandler{DB: db}
	adminHandler := &handlers.AdminHandler{DB: db}
	userHandler := &handlers.UserHandler{DB: db}
	feedbackHandler := &handlers.FeedbackHandler{DB: db}
	ingredientHandler := &handlers.IngredientHandler{DB: db}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	// API routes under /api
	api := app.Group("/api")
	authUser := middleware.AuthUser(cfg)
	authAdmin := middleware.AuthAdmin(cfg)

	// Public routes
	api.Get("/health", healthHandler.Check)
	api.Get("/stores", storeHandler.ListStores)
	api.Get("/stores/:id/recipes", storeHandler.ListStoreRecipes)
	api.Get("/ingredients/suggest", ingredientHandler.Suggest)

	// Recipe routes
	api.Get("/recipes", recipeHandler.ListRecipes)
	api.Get("/recipes/mine", authUser, recipeHandler.ListMyRecipes)
	api.Get("/recipes/:id", recipeHandler.GetRecipe)
	api.Post("/recipes", authUser, recipeHandler.CreateRecipe)
	api.Put("/recipes/:id", authUser, recipeHandler.UpdateRecipe)
	api.Delete("/recipes/:id", authUser, recipeHandler.DeleteRecipe)
	api.Delete("/recipe-ingredients/:id", authUser, recipeHandler.DeleteRecipeIngredient)

	// Grocery list
	api.Post("/grocery-list", authUser, groceryHandler.Generate)

	// Prep routes
	api.Get("/preps/current", authUser, prepHandler.GetCurrent)
	api.Put("/preps/current", authUser, prepHandler.SaveCurrent)
	api.Delete("/preps/current", authUser, prepHandler.ClearCurrent)
	api.Get("/preps/past", authUser, prepHandler.ListPast)
	api.Post("/preps/past", authUser, prepHandler.CreatePast)
	api.Get("/preps/past/:id", authUser, prepHandler.GetPast)
	api.Delete("/preps/past/:id", authUser, prepHandler.DeletePast)
	api.Post("/preps/past/:id/use", authUser, prepHandler.UsePast)

	// User routes
	api.Get("/users/me", authUser, userHandler.GetMe)
	api.Put("/users/me/preferences", authUser, userHandler.UpdatePreferences)

	// Feedback
	api.Post("/feedback", authUser, feedbackHandler.Create)

	// Admin routes
	admin := api.Group("/admin", authAdmin)
	admin.Get("/recipes", adminHandler.ListAllRecipes)
	admin.Get("/recipes/pending", adminHandler.ListPendingRecipes)
	admin.Post("/recipes/approve", adminHandler.ApproveRecipes)
	admin.Post("/recipes/:id/approve", adminHandler.ApproveRecipe)
	admin.Delete("/recipes/:id", adminHandler.RejectRecipe)
	admin.Post("/stores", adminHandler.CreateStore)
	admin.Delete("/stores/:id", adminHandler.DeleteStore)
	admin.Get("/feedback", adminHandler.ListFeedback)
	admin.Delete("/feedback/:id", adminHandler.DeleteFeedback)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// The Authorizer client needs a request host for its redirect URL, so it
	// initializes on the first authenticated request.
	log.Printf("Authorizer will be initialized on first authenticated request")

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var fiberErr *fiber.Error
	var customErr *types.CustomError
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &customErr):
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	case errors.As(err, &validationErr):
		return utils.ValidationErrorResponse(c, validationErr.Issues)
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success":   false,
		"error":     message,
		"type":      errorType,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}
