package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/skillswap/backend/internal/handlers"
	"github.com/anonto42/skillswap/backend/internal/middleware"
	"github.com/anonto42/skillswap/backend/internal/models"
	"github.com/anonto42/skillswap/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.SkillOffered{},
		&models.SkillWanted{},
		&models.SwapRequest{},
		&models.Rating{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	skillRepo := repositories.NewPostgresSkillRepository(pgdb)
	swapRepo := repositories.NewPostgresSwapRepository(pgdb)
	ratingRepo := repositories.NewPostgresRatingRepository(pgdb)
	messageRepo := repositories.NewMongoAdminMessageRepository(mgClient.Database("skillswap"))

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT and a live, non-banned account) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	api.Use(middleware.LoadActor(userRepo))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile and discovery routes
	userHandler := handlers.NewUserHandler(userRepo, skillRepo, ratingRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Skill catalog routes
	skillHandler := handlers.NewSkillHandler(skillRepo)
	skillHandler.RegisterSkillRoutes(api)
	log.Println("Skill routes configured.")

	// Swap request routes
	swapHandler := handlers.NewSwapHandler(swapRepo, userRepo)
	swapHandler.RegisterSwapRoutes(api)
	log.Println("Swap request routes configured.")

	// Rating routes
	ratingHandler := handlers.NewRatingHandler(ratingRepo, swapRepo)
	ratingHandler.RegisterRatingRoutes(api)
	log.Println("Rating routes configured.")

	// Broadcast messages readable by every signed-in user
	adminHandler := handlers.NewAdminHandler(userRepo, messageRepo)
	adminHandler.RegisterMessageRoutes(api)

	// Admin-only routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin())
	adminHandler.RegisterAdminRoutes(adminGroup)
	log.Println("Admin routes configured.")

	log.Println("All routes configured.")
}
