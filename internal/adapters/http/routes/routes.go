package routes

import (
	"diu-alumnihub/internal/adapters/http/handlers"
	"diu-alumnihub/internal/adapters/http/middleware"
	"diu-alumnihub/internal/adapters/payment"
	"diu-alumnihub/internal/adapters/persistence/repositories"
	"diu-alumnihub/internal/config"
	"diu-alumnihub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers onto the app
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewRefreshTokenRepository(db)
	requestRepo := repositories.NewMembershipRequestRepository(db)
	counterRepo := repositories.NewMembershipCounterRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Adapters
	gateway := payment.NewSSLCommerzGateway(cfg.Payment)
	mailer := services.NewMailService(cfg.Mail)

	// Services
	authService := services.NewAuthService(userRepo, tokenRepo, cfg)
	userService := services.NewUserService(userRepo, counterRepo)
	settingsService := services.NewSettingsService(settingsRepo)
	membershipService := services.NewMembershipService(requestRepo, txRepo, userService, settingsService, gateway, mailer)
	txService := services.NewTransactionService(txRepo)
	dashboardService := services.NewDashboardService(userRepo, requestRepo, txService)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, userService)
	userHandler := handlers.NewUserHandler(userService)
	membershipHandler := handlers.NewMembershipHandler(membershipService)
	txHandler := handlers.NewTransactionHandler(txService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check
	app.Get("/health", healthHandler.Check)

	api := app.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// User routes
	users := api.Group("/users", middleware.AuthMiddleware(cfg))
	users.Put("/me", userHandler.UpdateMe)
	users.Get("/search", userHandler.Search)
	users.Get("/", middleware.AdminOnly(), userHandler.List)
	users.Get("/:id", middleware.AdminOnly(), userHandler.Get)
	users.Post("/:id/roles", middleware.AdminOnly(), userHandler.GrantRole)
	users.Patch("/:id/active", middleware.AdminOnly(), userHandler.SetActive)

	// Membership request routes
	memberships := api.Group("/membership-requests", middleware.AuthMiddleware(cfg))
	memberships.Post("/", membershipHandler.Create)
	memberships.Get("/me", membershipHandler.GetMy)
	memberships.Get("/", middleware.AdminOnly(), membershipHandler.List)
	memberships.Get("/:id", middleware.AdminOnly(), membershipHandler.Get)
	memberships.Patch("/:id/status", middleware.AdminOnly(), membershipHandler.UpdateStatus)
	memberships.Post("/:id/payment", membershipHandler.RecordPayment)

	// Financial transaction routes
	transactions := api.Group("/transactions", middleware.AuthMiddleware(cfg))
	transactions.Post("/", middleware.FinanceOnly(), txHandler.Create)
	transactions.Get("/", txHandler.List)
	transactions.Get("/pending-review", middleware.FinanceOnly(), txHandler.PendingReview)
	transactions.Get("/summary", middleware.FinanceOnly(), txHandler.Summary)
	transactions.Get("/:id", txHandler.Get)
	transactions.Put("/:id", txHandler.Update)
	transactions.Post("/:id/submit", txHandler.Submit)
	transactions.Post("/:id/review", middleware.FinanceOnly(), txHandler.Review)
	transactions.Delete("/:id", txHandler.Delete)

	// Settings routes
	settings := api.Group("/settings", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	settings.Post("/", settingsHandler.Create)
	settings.Get("/", settingsHandler.List)
	settings.Get("/:key", settingsHandler.Get)
	settings.Put("/:key", settingsHandler.Update)
	settings.Delete("/:key", settingsHandler.Delete)

	// Dashboard routes
	dashboard := api.Group("/dashboard", middleware.AuthMiddleware(cfg), middleware.FinanceOnly())
	dashboard.Get("/stats", dashboardHandler.Stats)
}
