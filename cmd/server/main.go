package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/palabras/internal/api"
	"github.com/vytor/palabras/internal/backup"
	"github.com/vytor/palabras/internal/config"
	"github.com/vytor/palabras/internal/db"
	"github.com/vytor/palabras/internal/logger"
	"github.com/vytor/palabras/internal/repository/sqlite"
	"github.com/vytor/palabras/internal/services"
	"github.com/vytor/palabras/internal/storage"
	"github.com/vytor/palabras/internal/vocabulary"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("Palabras Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Error("failed to load timezone: %v", err)
		os.Exit(1)
	}

	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("storage_prefix=%s", cfg.StoragePrefix)
	log.Debug("review_limit=%d", cfg.ReviewLimit)
	log.Debug("correct_threshold=%d", cfg.CorrectThreshold)
	log.Debug("timezone=%s", loc)
	log.Debug("backup_dir=%s", cfg.BackupDir)
	log.Debug("write_rate_per_second=%v", cfg.WriteRatePerSecond)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	store := storage.New(sqlite.NewKVRepository(database.DB), cfg.StoragePrefix, storage.WithLogger(log))
	if !store.Initialize(context.Background()) {
		log.Error("failed to initialize stored progress")
		os.Exit(1)
	}

	vocab := vocabulary.Starter()
	log.Debug("vocabulary loaded: %d words in %d categories", len(vocab.Words()), len(vocab.Categories()))

	// Initialize services
	opts := []services.Option{
		services.WithLocation(loc),
		services.WithCorrectThreshold(cfg.CorrectThreshold),
		services.WithReviewLimit(cfg.ReviewLimit),
	}
	srv := &api.Server{
		DB:              database,
		ExerciseService: services.NewExerciseService(store, vocab, opts...),
		ProfileService:  services.NewProfileService(store, opts...),
		ReviewService:   services.NewReviewService(store, vocab, opts...),
		DataService:     services.NewDataService(store),
	}
	if cfg.WriteRatePerSecond > 0 {
		srv.WriteLimiter = rate.NewLimiter(rate.Limit(cfg.WriteRatePerSecond), cfg.WriteBurst)
	}

	// Schedule backups
	if cfg.BackupDir != "" {
		b := backup.New(store, cfg.BackupDir, cfg.BackupKeep)
		sched, err := backup.NewScheduler(b, time.Duration(cfg.BackupIntervalHours)*time.Hour, log)
		if err != nil {
			log.Error("failed to schedule backups: %v", err)
			os.Exit(1)
		}
		sched.Start()
		defer func() {
			log.Debug("stopping backup scheduler")
			sched.Stop()
		}()
		log.Info("backups every %dh into %s, keeping %d", cfg.BackupIntervalHours, cfg.BackupDir, cfg.BackupKeep)
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("initiating graceful shutdown")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		log.Debug("shutting down HTTP server")
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("HTTP server error: %v", err)
	}

	log.Info("===========================================")
	log.Info("Palabras Server Stopped")
	log.Info("===========================================")
}
