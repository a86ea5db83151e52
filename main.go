package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/purge-dev/CliniCord/api"
	"github.com/purge-dev/CliniCord/config"
	"github.com/purge-dev/CliniCord/database"
	"github.com/purge-dev/CliniCord/middleware"
	"github.com/purge-dev/CliniCord/models"
	"github.com/purge-dev/CliniCord/repository"
	"github.com/purge-dev/CliniCord/services"
)

func main() {
	// Load application configuration
	config.LoadConfig()

	// Initialize database connection
	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}
	runMigrations(db)

	// Load and validate instruments. A malformed instrument must stop the
	// process here, before anything is served.
	catalog, err := services.NewInstrumentCatalog(config.AppConfig.Assessment.InstrumentDir)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to load assessment instruments: %v", err)
	}

	// Initialize repositories
	sessionRegistry := repository.NewSessionRegistry()
	resultRepo := repository.NewResultRepository(db)
	log.Println("INFO: [Main] Repositories initialized.")

	// Initialize services
	assessmentService := services.NewAssessmentService(catalog, sessionRegistry, resultRepo)
	sweeper := services.NewExpirySweeper(
		assessmentService,
		config.AppConfig.Assessment.InactivityWindow(),
		config.AppConfig.Assessment.SweepInterval(),
	)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("FATAL: [Main] Failed to start expiry sweeper: %v", err)
	}
	defer sweeper.Stop()
	log.Println("INFO: [Main] Services initialized.")

	// Initialize API handler with all dependencies
	apiHandler := api.NewAPIHandler(assessmentService, catalog, resultRepo)
	log.Println("INFO: [Main] API Handler initialized.")

	// Create Gin engine
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Register middlewares
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	log.Println("INFO: [Main] Middlewares registered.")

	registerRoutes(r, apiHandler)
	log.Println("INFO: [Main] Routes registered.")

	// Start the server
	serverPort := ":" + config.AppConfig.Server.Port
	if config.AppConfig.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running database migrations...")
	if err := db.AutoMigrate(&models.AssessmentRecord{}); err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}
	log.Println("INFO: [Main] Database migration completed.")
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/instruments", handler.InstrumentsHandler)

		assessmentGroup := apiGroup.Group("/assessment")
		{
			assessmentGroup.POST("/start", handler.StartAssessmentHandler)
			assessmentGroup.POST("/answer", handler.AnswerHandler)
			assessmentGroup.POST("/cancel", handler.CancelAssessmentHandler)
			assessmentGroup.GET("/history/:userID", handler.HistoryHandler)
		}
	}
}
