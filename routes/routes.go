package routes

import (
	"log"
	"os"

	"healthsync/config"
	controller "healthsync/controllers"
	"healthsync/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, keys *config.APIKeyStore) {
	// Shared collaborators
	usage := services.NewTokenUsageTracker()
	engine := services.NewComparisonService(db)
	gemini := services.NewGeminiService(keys, usage)

	// Controllers with their respective loggers
	compareController := controller.NewCompareController(engine, log.New(os.Stdout, "COMPARE: ", log.LstdFlags))
	aiSearchController := controller.NewAISearchController(gemini, log.New(os.Stdout, "AISEARCH: ", log.LstdFlags))
	developerController := controller.NewDeveloperController(keys, gemini, usage, log.New(os.Stdout, "DEVELOPER: ", log.LstdFlags))
	contactController := controller.NewContactController(log.New(os.Stdout, "CONTACT: ", log.LstdFlags))

	// API group with request logging
	api := app.Group("/api", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Health check
	api.Get("/health", compareController.HealthCheck)

	// Supported provinces
	api.Get("/provinces", compareController.GetProvinces)

	// Catalog browsing (no requester context)
	api.Get("/plans", compareController.GetAllPlans)

	// Core comparison engine
	api.Post("/compare", compareController.Compare)

	// AI-powered free-text insurance search
	api.Post("/ai-search", aiSearchController.Search)

	// Contact form
	api.Post("/contact", contactController.Submit)

	// Developer console (hidden, no navigation link)
	developer := api.Group("/developer")
	developer.Get("/api-key", developerController.GetAPIKey)
	developer.Post("/api-key", developerController.UpdateAPIKey)
	developer.Get("/api-key/test", developerController.TestAPIKey)
	developer.Get("/token-usage", developerController.GetTokenUsage)
	developer.Post("/token-usage/reset", developerController.ResetTokenUsage)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})

	log.Println("API routes initialized successfully")
}
