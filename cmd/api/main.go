package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"infinium/internal/analysis"
	"infinium/internal/config"
	"infinium/internal/database"
	"infinium/internal/handler"
	"infinium/internal/imagestore"
	"infinium/internal/repository"
	"infinium/internal/router"
	"infinium/internal/service"

	"github.com/rs/zerolog"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger, os.Stdout)
	logger.Info().Str("version", version).Msg("starting infinium API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool, logger)
	familyRepo := repository.NewFamilyRepository(pool, logger)
	foodRepo := repository.NewFoodAnalysisRepository(pool, logger)
	planRepo := repository.NewDietPlanRepository(pool, logger)
	recRepo := repository.NewRecommendationRepository(pool, logger)

	// Initialize vision and text generation
	gemini, err := analysis.NewGeminiClient(ctx, cfg.Analysis.GoogleAPIKey,
		cfg.Analysis.VisionModel, cfg.Analysis.TextModel, cfg.Analysis.Timeout(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize gemini client: %w", err)
	}

	generator, err := newGenerator(cfg.Analysis, gemini, logger)
	if err != nil {
		return err
	}
	advisor := analysis.NewAdvisor(generator, logger)

	// Initialize image storage with S3 and local fallback
	images := newImageStore(ctx, cfg, logger)

	// Initialize services
	foodService := service.NewFoodService(foodRepo, planRepo, recRepo, userRepo, gemini, advisor, images, logger)
	userService := service.NewUserService(userRepo, familyRepo, logger)

	// Initialize HTTP handlers
	foodHandler := handler.NewFoodHandler(foodService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	deviceHandler := handler.NewDeviceHandler(foodService, logger)
	healthHandler := handler.NewHealthHandler(pool, version, logger)
	staticHandler := handler.NewStaticHandler(cfg.Server.StaticDir, logger)

	// Initialize router
	mux := router.New(foodHandler, userHandler, deviceHandler, healthHandler, staticHandler, router.Options{
		APIKey:       cfg.Auth.APIKey,
		CORSOrigin:   cfg.Server.CORSOrigin,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		ImageDir:     cfg.Storage.ImageDir,
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Analysis.Timeout() + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Str("static_dir", cfg.Server.StaticDir).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newGenerator picks the text generation backend for plans and recommendations.
func newGenerator(cfg config.AnalysisConfig, gemini *analysis.GeminiClient, logger zerolog.Logger) (analysis.Generator, error) {
	if cfg.Provider != config.ProviderOpenAI {
		return gemini, nil
	}

	gen, err := analysis.NewLangChainGenerator(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize openai generator: %w", err)
	}
	logger.Info().Str("model", cfg.OpenAIModel).Msg("using openai for diet plans and recommendations")
	return gen, nil
}

func newImageStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) imagestore.Store {
	local := imagestore.NewLocalStore(cfg.Storage.ImageDir, logger)
	if !cfg.S3.Enabled {
		logger.Info().Str("dir", cfg.Storage.ImageDir).Msg("using local file system for images (S3 disabled)")
		return local
	}

	s3Store, err := imagestore.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.PublicURL, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 image store, falling back to local file system only")
		return local
	}
	return imagestore.NewFallbackStore(s3Store, local, cfg.S3.Prefix, true, logger)
}
