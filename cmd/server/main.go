package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"diu-alumnihub/internal/adapters/http/middleware"
	"diu-alumnihub/internal/adapters/http/routes"
	"diu-alumnihub/internal/adapters/persistence/models"
	"diu-alumnihub/internal/config"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// Seed baseline data
	if err := config.SeedDatabase(db, cfg); err != nil {
		log.Fatalf("❌ Failed to seed database: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "DIU AlumniHub API",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middleware and routes
	middleware.Setup(app, cfg)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		log.Println("⚠️  Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server shutdown error: %v", err)
		}
		if err := config.CloseDatabase(); err != nil {
			log.Printf("❌ Database close error: %v", err)
		}
	}()

	log.Printf("🚀 Server starting on port %s [%s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
