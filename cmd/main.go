package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pms/corrections-backend/internal/db"
	"github.com/pms/corrections-backend/internal/events"
	"github.com/pms/corrections-backend/internal/handlers"
	"github.com/pms/corrections-backend/internal/logger"
	"github.com/pms/corrections-backend/internal/middleware"
	"github.com/pms/corrections-backend/internal/repos"
	"github.com/pms/corrections-backend/internal/server"
	"github.com/pms/corrections-backend/internal/services"
	"github.com/pms/corrections-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	inmateRepo := repos.NewInmateRepo(thePG, log)
	profileRepo := repos.NewRehabProfileRepo(thePG, log)
	programRepo := repos.NewProgramRepo(thePG, log)
	stationRepo := repos.NewStationRepo(thePG, log)
	officerRepo := repos.NewOfficerRepo(thePG, log)
	recommendationRepo := repos.NewRecommendationRepo(thePG, log)
	progressLogRepo := repos.NewProgressLogRepo(thePG, log)
	medicalReportRepo := repos.NewMedicalReportRepo(thePG, log)
	counselingNoteRepo := repos.NewCounselingNoteRepo(thePG, log)

	// Events
	log.Info("Setting up event publisher from main...")
	publisher, err := events.NewRedisPublisher(log)
	if err != nil {
		log.Warn("Redis publisher unavailable, events disabled", "error", err)
		publisher = events.NewNoopPublisher()
	}

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	inmateService := services.NewInmateService(thePG, log, inmateRepo)
	predictorClient := services.NewPredictorClient(log)
	assignmentService := services.NewAssignmentService(log, stationRepo, officerRepo)
	rehabilitationService := services.NewRehabilitationService(
		thePG,
		log,
		profileRepo,
		programRepo,
		stationRepo,
		officerRepo,
		recommendationRepo,
		medicalReportRepo,
		counselingNoteRepo,
		assignmentService,
		predictorClient,
		publisher,
	)
	progressService := services.NewProgressService(thePG, log, recommendationRepo, progressLogRepo, publisher)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	inmateHandler := handlers.NewInmateHandler(inmateService)
	rehabilitationHandler := handlers.NewRehabilitationHandler(rehabilitationService, progressService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:           authHandler,
		AuthMiddleware:        authMiddleware,
		InmateHandler:         inmateHandler,
		RehabilitationHandler: rehabilitationHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
