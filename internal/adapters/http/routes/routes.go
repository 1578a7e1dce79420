package routes

import (
	"sfms-backend/internal/adapters/http/handlers"
	"sfms-backend/internal/adapters/http/middleware"
	"sfms-backend/internal/adapters/persistence/repositories"
	"sfms-backend/internal/config"
	"sfms-backend/internal/core/domain"
	"sfms-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	contributionRepo := repositories.NewContributionRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	repaymentRepo := repositories.NewLoanRepaymentRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	contributionService := services.NewContributionService(contributionRepo)
	loanService := services.NewLoanService(loanRepo)
	repaymentService := services.NewRepaymentService(repaymentRepo)
	dashboardService := services.NewDashboardService(db)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	contributionHandler := handlers.NewContributionHandler(contributionService)
	loanHandler := handlers.NewLoanHandler(loanService)
	repaymentHandler := handlers.NewRepaymentHandler(repaymentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, cfg)
	setupUserRoutes(apiV1.Group("/users"), userHandler, cfg)
	setupContributionRoutes(apiV1.Group("/contributions"), contributionHandler, cfg)
	setupLoanRoutes(apiV1.Group("/loans"), loanHandler, cfg)
	setupRepaymentRoutes(apiV1.Group("/loan-repayments"), repaymentHandler, cfg)

	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/summary", middleware.StaffOnly(), dashboardHandler.Summary)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, rate-limited against brute force
	router.Post("/register", middleware.StrictRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
}

// setupUserRoutes configures user management routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	router.Get("/", middleware.SuperAdminOnly(), handler.List)
	router.Get("/role/:role", middleware.StaffOnly(), handler.ListByRole)
	router.Get("/username/:username", middleware.StaffOnly(), handler.GetByUsername)

	// Self-or-elevated checks happen inside the handlers
	router.Get("/:id", handler.GetByID)
	router.Put("/:id", handler.Update)

	router.Delete("/:id", middleware.SuperAdminOnly(), handler.Delete)
}

// setupContributionRoutes configures contribution routes
func setupContributionRoutes(router fiber.Router, handler *handlers.ContributionHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	router.Get("/", middleware.TreasuryOnly(), handler.GetAll)
	router.Get("/user/:userID", handler.GetByUser)
	router.Get("/user/:userID/total", handler.TotalByUser)
	router.Post("/", middleware.TreasuryOnly(), handler.Create)
	router.Put("/:id", middleware.TreasuryOnly(), handler.Update)
	router.Delete("/:id", middleware.TreasuryOnly(), handler.Delete)
}

// setupLoanRoutes configures loan routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	loanStaff := middleware.RoleMiddleware(
		domain.RoleTreasurer,
		domain.RoleSuperAdmin,
		domain.RoleScreeningCommittee,
	)

	router.Get("/", loanStaff, handler.GetAll)
	router.Get("/user/:userID", handler.GetByUser)
	router.Get("/user/:userID/total", handler.TotalByUser)
	router.Post("/", loanStaff, handler.Create)
	router.Put("/:id", loanStaff, handler.Update)
	router.Delete("/:id", middleware.TreasuryOnly(), handler.Delete)
}

// setupRepaymentRoutes configures loan repayment routes
func setupRepaymentRoutes(router fiber.Router, handler *handlers.RepaymentHandler, cfg *config.Config) {
	router.Use(middleware.AuthMiddleware(cfg))

	router.Get("/", middleware.TreasuryOnly(), handler.GetAll)
	router.Get("/user/:userID", handler.GetByUser)
	router.Get("/user/:userID/total", handler.TotalByUser)
	router.Post("/", middleware.TreasuryOnly(), handler.Create)
	router.Put("/:id", middleware.TreasuryOnly(), handler.Update)
	router.Delete("/:id", middleware.TreasuryOnly(), handler.Delete)
}
