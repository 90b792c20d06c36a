// Package main is the entry point for the daebak lottery strategy engine.
// The server ingests historical 6/45 draws, scores all 45 numbers against
// seven statistical models, fuses the rankings into a candidate pool, and
// samples a final combination under hard structural constraints before
// evaluating its financial expected value.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/daebak/internal/backup"
	"github.com/aristath/daebak/internal/combinatorics"
	"github.com/aristath/daebak/internal/config"
	"github.com/aristath/daebak/internal/database"
	"github.com/aristath/daebak/internal/events"
	"github.com/aristath/daebak/internal/modules/fusion"
	"github.com/aristath/daebak/internal/modules/history"
	historyhandlers "github.com/aristath/daebak/internal/modules/history/handlers"
	"github.com/aristath/daebak/internal/modules/payout"
	"github.com/aristath/daebak/internal/modules/popularity"
	"github.com/aristath/daebak/internal/modules/profile"
	scoringhandlers "github.com/aristath/daebak/internal/modules/scoring/api/handlers"
	"github.com/aristath/daebak/internal/modules/strategy"
	strategyhandlers "github.com/aristath/daebak/internal/modules/strategy/handlers"
	"github.com/aristath/daebak/internal/scheduler"
	"github.com/aristath/daebak/internal/server"
	"github.com/aristath/daebak/pkg/logger"
)

const resultsRetention = 90 * 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	log.Info().Str("data_dir", cfg.DataDir).Msg("Starting daebak strategy engine")

	drawsDB, err := database.New(database.Config{
		Path:    cfg.DrawsDBPath(),
		Name:    "draws",
		Profile: database.ProfileArchive,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open draws database")
	}
	defer drawsDB.Close()

	resultsDB, err := database.New(database.Config{
		Path:    cfg.ResultsDBPath(),
		Name:    "results",
		Profile: database.ProfileResults,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open results database")
	}
	defer resultsDB.Close()

	eventBus := events.NewBus()
	eventManager := events.NewManager(eventBus, log)

	historyRepo, err := history.NewRepository(drawsDB.Conn(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize draw repository")
	}
	historyService := history.NewService(historyRepo, log)

	resultsRepo, err := strategy.NewRepository(resultsDB.Conn(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize results repository")
	}

	calc := combinatorics.NewCalculator()
	strategyService := strategy.NewService(strategy.Config{
		History:      historyService,
		Popularity:   popularity.NewModel(popularity.DefaultBiasWeights()),
		Profiles:     profile.NewBuilder(profile.DefaultBounds(), profile.DefaultDimensionWeights(), log),
		Constraints:  profile.DefaultHardConstraints(),
		Fuser:        fusion.NewFuser(log),
		PoolBuilder:  fusion.NewPoolBuilder(log),
		PayoutEngine: payout.NewEngine(payout.DefaultConfig(), calc, log),
		Calculator:   calc,
		Repository:   resultsRepo,
		EventManager: eventManager,
		Log:          log,
	})

	var backupService *backup.Service
	if cfg.Backup != nil && cfg.Backup.Enabled {
		backupService, err = backup.New(
			context.Background(),
			cfg.Backup,
			[]string{drawsDB.Path(), resultsDB.Path()},
			eventManager,
			log,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize backup service")
		}
	}

	sched := scheduler.New(log)
	if backupService != nil {
		if err := sched.AddJob(cfg.Backup.Schedule, scheduler.NewBackupJob(backupService)); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule backup job")
		}
	}
	// Daily at 3 AM, before the backup window.
	if err := sched.AddJob("0 0 3 * * *", scheduler.NewCleanupJob(resultsRepo, resultsRetention, eventManager)); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule cleanup job")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:              log,
		Port:             cfg.Port,
		DevMode:          cfg.DevMode,
		DrawsDB:          drawsDB,
		ResultsDB:        resultsDB,
		EventBus:         eventBus,
		HistoryHandlers:  historyhandlers.NewHandler(historyService, eventManager, log),
		ScoringHandlers:  scoringhandlers.NewHandlers(historyService, log),
		StrategyHandlers: strategyhandlers.NewHandler(strategyService, resultsRepo, log),
		BackupService:    backupService,
		StartupTime:      time.Now(),
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	log.Info().Msg("Shutdown complete")
}
