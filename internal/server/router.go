package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pms/corrections-backend/internal/handlers"
	"github.com/pms/corrections-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler           *handlers.AuthHandler
	AuthMiddleware        *middleware.AuthMiddleware
	InmateHandler         *handlers.InmateHandler
	RehabilitationHandler *handlers.RehabilitationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/logout", cfg.AuthHandler.Logout)

	inmates := protected.Group("/inmates")
	{
		inmates.POST("", cfg.InmateHandler.Create)
		inmates.GET("/search", cfg.InmateHandler.Search)
		inmates.GET("/:id", cfg.InmateHandler.Get)
		inmates.PUT("/:id", cfg.InmateHandler.Update)
		inmates.DELETE("/:id", cfg.InmateHandler.Delete)
	}

	rehab := protected.Group("/rehabilitation")
	{
		rehab.POST("/recommend", cfg.RehabilitationHandler.GenerateRecommendation)
		rehab.GET("/profile/:inmateId", cfg.RehabilitationHandler.GetProfile)
		rehab.GET("/recommendations/:inmateId", cfg.RehabilitationHandler.GetRecommendations)
		rehab.GET("/programs", cfg.RehabilitationHandler.ListPrograms)
		rehab.POST("/progress", cfg.RehabilitationHandler.LogProgress)
		rehab.GET("/progress/:recommendationId", cfg.RehabilitationHandler.GetProgress)
		rehab.POST("/medical-report", cfg.RehabilitationHandler.AddMedicalReport)
		rehab.POST("/counseling-note", cfg.RehabilitationHandler.AddCounselingNote)
	}

	return router
}
