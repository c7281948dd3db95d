package main

import (
	"log"
	"os"

	"healthsync/config"
	"healthsync/middleware"
	"healthsync/routes"
	"healthsync/seeder"

	"github.com/gofiber/fiber/v2"
)

func main() {
	logger := log.New(os.Stdout, "HEALTHSYNC: ", log.Ldate|log.Ltime|log.Lshortfile)

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Seed mode: rebuild the plan catalog and exit
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := seeder.Run(config.DB); err != nil {
			logger.Fatalf("Failed to seed catalog: %v", err)
		}
		logger.Println("Catalog seeded successfully")
		return
	}

	// Create Fiber app
	app := fiber.New()

	// Add CORS middleware
	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = config.AppConfig.CORSOrigins
	app.Use(middleware.CORS(corsConfig))

	// Gemini API key store, swappable at runtime via the developer console
	keys := config.NewAPIKeyStore(config.AppConfig.GeminiAPIKey)

	// Setup routes
	routes.SetupRoutes(app, config.DB, keys)

	// Start server
	logger.Printf("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
