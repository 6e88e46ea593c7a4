package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/signingconnect/signingconnect-api/internal/config"
	"github.com/signingconnect/signingconnect-api/internal/database"
	"github.com/signingconnect/signingconnect-api/internal/handlers"
	"github.com/signingconnect/signingconnect-api/internal/middleware"
	"github.com/signingconnect/signingconnect-api/internal/services"
	"github.com/signingconnect/signingconnect-api/internal/utils"

	_ "github.com/signingconnect/signingconnect-api/docs/api" // Swagger docs
)

// @title SigningConnect API
// @version 1.0.0
// @description Two-sided notary signing marketplace: agent intake, admin review, company job postings
// @contact.name API Support
// @host localhost:3001
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.InitLogger(cfg.IsProduction())
	defer func() { _ = logger.Sync() }()

	utils.SetJWTSecret(cfg.JWTSecret)

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		zap.L().Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		zap.L().Fatal("failed to run migrations", zap.Error(err))
	}

	// Optional bootstrap admin
	if err := services.EnsureAdminAccount(db, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
		zap.L().Fatal("failed to seed admin account", zap.Error(err))
	}

	app := newApp(cfg, db)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		zap.L().Info("gracefully shutting down")
		_ = app.Shutdown()
	}()

	zap.L().Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zap.L().Fatal("failed to start server", zap.Error(err))
	}

	zap.L().Info("server stopped")
}

// newApp builds the Fiber application with all middleware and routes.
// Split out of main so tests can stand up the full route tree.
func newApp(cfg *config.Config, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("signingconnect")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Handlers
	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg}
	applicationHandler := &handlers.ApplicationHandler{DB: db, Cfg: cfg}
	adminHandler := &handlers.AdminHandler{DB: db, Cfg: cfg}
	jobHandler := &handlers.JobHandler{DB: db, Cfg: cfg}
	notificationHandler := &handlers.NotificationHandler{DB: db, Cfg: cfg}
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}

	// API routes under /api
	api := app.Group("/api", middleware.GlobalLimiter())

	api.Get("/health", healthHandler.Check)

	// Public auth routes, throttled hard
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthLimiter(), authHandler.Login)
	auth.Post("/forgot-password", middleware.AuthLimiter(), authHandler.ForgotPassword)
	auth.Post("/reset-password", middleware.AuthLimiter(), authHandler.ResetPassword)

	// Authenticated account routes
	auth.Get("/verify", middleware.Protected(db), authHandler.Verify)
	auth.Get("/profile", middleware.Protected(db), authHandler.GetProfile)
	auth.Patch("/profile", middleware.Protected(db), authHandler.UpdateProfile)
	auth.Post("/change-password", middleware.Protected(db), authHandler.ChangePassword)

	// Public agent application intake
	api.Post("/applications/submit", middleware.ApplicationLimiter(), applicationHandler.Submit)
	api.Get("/applications/status/:applicationId", applicationHandler.Status)

	// Admin review routes
	admin := api.Group("/admin", middleware.Protected(db), middleware.RequireAdmin())
	admin.Get("/applications", adminHandler.ListApplications)
	admin.Get("/applications/:id", adminHandler.GetApplication)
	admin.Patch("/applications/:id/status", adminHandler.UpdateApplicationStatus)

	// Job routes
	jobs := api.Group("/jobs", middleware.Protected(db))
	jobs.Post("/", middleware.RequireCompany(), jobHandler.Create)
	jobs.Get("/", jobHandler.List)
	jobs.Get("/:id", jobHandler.Get)
	jobs.Patch("/:id/status", middleware.RequireCompany(), jobHandler.UpdateStatus)
	jobs.Post("/:id/apply", middleware.RequireAgent(), jobHandler.Apply)
	jobs.Get("/:id/applications", middleware.RequireCompany(), jobHandler.ListBids)

	// Notifications
	notifications := api.Group("/notifications", middleware.Protected(db))
	notifications.Get("/", notificationHandler.List)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success":   false,
			"message":   "Resource not found",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	return app
}
