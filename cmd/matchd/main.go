package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lumora-app/matchmaker/internal/config"
	"github.com/lumora-app/matchmaker/internal/database"
	"github.com/lumora-app/matchmaker/internal/matching"
	"github.com/lumora-app/matchmaker/internal/notify"
	"github.com/lumora-app/matchmaker/internal/repositories"
	"github.com/lumora-app/matchmaker/internal/services"
	"github.com/lumora-app/matchmaker/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting matchmaker daemon...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Scoring policy comes entirely from configuration.
	weights := matching.Weights{
		MaxAgeGap:         cfg.MaxAgeGapYears,
		RegionExact:       cfg.RegionExactWeight,
		RegionSuper:       cfg.RegionSuperWeight,
		RegionBase:        cfg.RegionBaseWeight,
		RankClose:         cfg.RankCloseWeight,
		RankNear:          cfg.RankNearWeight,
		RankFar:           cfg.RankFarWeight,
		AgeSame:           cfg.AgeSameWeight,
		AgeOne:            cfg.AgeOneWeight,
		AgeTwo:            cfg.AgeTwoWeight,
		MinorSameAgeBonus: cfg.MinorSameAgeBonus,
		SuperRegions:      cfg.SuperRegionTable(),
	}
	scorer := matching.NewScorer(weights)

	queueRepo := repositories.NewQueueRepository(db)
	blacklistRepo := repositories.NewBlacklistRepository(db)
	pairingRepo := repositories.NewPairingRepository(db)

	var notifier notify.Notifier
	if cfg.BotToken != "" {
		telegramNotifier, err := notify.NewTelegramNotifier(cfg.BotToken)
		if err != nil {
			logger.Fatal("Failed to initialize telegram notifier", err)
		}
		notifier = telegramNotifier
	} else {
		logger.Warn("BOT_TOKEN not set, notifications will only be logged")
		notifier = notify.NewLogNotifier()
	}

	matchService := services.NewMatchService(
		queueRepo, blacklistRepo, pairingRepo, scorer, notifier, cfg.QueueEnabled)

	scheduler := services.NewScheduler(matchService, cfg.GetMatchInterval(), cfg.GetRetentionWindow())
	scheduler.Start()

	logger.Info("Matchmaker started successfully",
		"env", cfg.AppEnv,
		"interval", cfg.GetMatchInterval(),
		"queue_enabled", cfg.QueueEnabled)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	scheduler.Stop()
	logger.Info("Matchmaker stopped")
}
