package main

import (
	"go.uber.org/zap"

	"github.com/LksLvnt/studymate/internal/config"
	"github.com/LksLvnt/studymate/internal/database"
	"github.com/LksLvnt/studymate/internal/generation"
	logger "github.com/LksLvnt/studymate/internal/logging"
	"github.com/LksLvnt/studymate/internal/router"
	"github.com/LksLvnt/studymate/internal/services"
	"github.com/LksLvnt/studymate/internal/utils"
)

func main() {
	// Load configuration first; the file logger needs the logging section.
	bootstrapLog := logger.Console()
	if err := config.Init(".", bootstrapLog); err != nil {
		bootstrapLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Logger
	log, err := logger.Init(config.Conf.Logging)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	if config.Conf.Server.SessionSecret == "" {
		secret, err := utils.GenerateSecureToken(32)
		if err != nil {
			log.Fatal("Failed to generate session secret", zap.Error(err))
		}
		config.Conf.Server.SessionSecret = secret
		log.Warn("No session secret configured, generated an ephemeral one; sessions will not survive restarts")
	}

	// Initialize Database
	database.Init(log)

	// The generation pipeline is external; the sample generator serves canned
	// content through the same validation path.
	gen, err := generation.NewSampleGenerator("config/sample_content.yaml")
	if err != nil {
		log.Fatal("Failed to load sample content", zap.Error(err))
	}

	ingest := services.NewIngestService(log, gen)
	review := services.NewReviewService(log)

	// Start the due-card reminder loop
	scheduler := services.NewScheduler(log, services.NewEmailService(log))
	scheduler.Start()

	// Setup router, passing the logger to it
	r := router.Setup(log, ingest, review)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
