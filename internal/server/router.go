package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/opencourses/backend/internal/handlers"
	"github.com/opencourses/backend/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string
	AuthMiddleware *middleware.AuthMiddleware
	AuthHandler    *handlers.AuthHandler
	CourseHandler  *handlers.CourseHandler
	LessonHandler  *handlers.LessonHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
	}

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	courses := protected.Group("/courses")
	{
		courses.GET("/search", cfg.CourseHandler.Search)
		courses.GET("/:id", cfg.CourseHandler.Get)
		courses.GET("/:id/summary", cfg.CourseHandler.GetSummary)
		courses.POST("", cfg.CourseHandler.Create)
		courses.PUT("/:id", cfg.CourseHandler.Update)
		courses.DELETE("/:id", cfg.CourseHandler.Delete)
		courses.PATCH("/:id/publish", cfg.CourseHandler.Publish)
		courses.PATCH("/:id/unpublish", cfg.CourseHandler.Unpublish)
	}

	lessons := protected.Group("/lessons")
	{
		lessons.GET("/course/:courseId", cfg.LessonHandler.ListByCourse)
		lessons.POST("", cfg.LessonHandler.Create)
		lessons.PUT("/:id", cfg.LessonHandler.Update)
		lessons.DELETE("/:id", cfg.LessonHandler.Delete)
		lessons.PATCH("/:id/reorder", cfg.LessonHandler.Reorder)
	}

	return router
}
