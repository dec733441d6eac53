package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/opencourses/backend/internal/config"
	"github.com/opencourses/backend/internal/db"
	"github.com/opencourses/backend/internal/handlers"
	"github.com/opencourses/backend/internal/logger"
	"github.com/opencourses/backend/internal/middleware"
	"github.com/opencourses/backend/internal/repos"
	"github.com/opencourses/backend/internal/server"
	"github.com/opencourses/backend/internal/services"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(cfg.PostgresDSN(), log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	database := postgresService.DB()

	if cfg.SeedDemoUser {
		if err := db.SeedDemoUser(database); err != nil {
			log.Warn("Demo user seed failed", "error", err)
		}
	}

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(database, log)
	courseRepo := repos.NewCourseRepo(database, log)
	lessonRepo := repos.NewLessonRepo(database, log)

	// Services
	log.Info("Setting up services...")
	authService := services.NewAuthService(database, log, userRepo, services.TokenSettings{
		Secret:    cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
		AccessTTL: cfg.AccessTTL(),
	})
	courseService := services.NewCourseService(database, log, courseRepo)
	lessonService := services.NewLessonService(database, log, courseRepo, lessonRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	courseHandler := handlers.NewCourseHandler(log, courseService)
	lessonHandler := handlers.NewLessonHandler(log, lessonService)
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	router := server.NewRouter(server.RouterConfig{
		AllowedOrigins: cfg.Origins(),
		AuthMiddleware: authMiddleware,
		AuthHandler:    authHandler,
		CourseHandler:  courseHandler,
		LessonHandler:  lessonHandler,
	})

	log.Info("Starting server", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
