package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"musclemania/gym-catalog/internal/api"
	"musclemania/gym-catalog/internal/config"
	"musclemania/gym-catalog/internal/generative"
	"musclemania/gym-catalog/internal/metrics"
	"musclemania/gym-catalog/internal/seed"
	"musclemania/gym-catalog/internal/service"
	"musclemania/gym-catalog/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Seed the catalog if needed and start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	logger.Info("Starting gym catalog server", zap.String("version", version))

	// --- Configuration ---
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Info("Configuration loaded", zap.String("driver", cfg.Store.Driver))

	// --- Store ---
	st, err := openStores(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer st.close()

	m := metrics.New()

	// --- Seeding ---
	// Runs before the listener starts, so no request sees a half-seeded catalog.
	if cfg.Seed.OnStartup {
		if err := runSeed(ctx, cfg.Seed, st.seed, seed.WithRecorder(m.RecordSeed)); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	// --- Generation (optional) ---
	var model generative.Model
	if cfg.GenAI.APIKey != "" {
		genModel, err := generative.NewGenAIModel(ctx, cfg.GenAI.APIKey, cfg.GenAI.TextModel, cfg.GenAI.ImageModel)
		if err != nil {
			return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
		}
		model = genModel
	} else {
		logger.Warn("genai.api_key is not set, generation endpoints will answer 503")
	}

	var images storage.FileStorage
	if cfg.S3.Enabled() {
		images, err = storage.NewS3Storage(ctx, cfg.S3, logger)
		if err != nil {
			return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
		}
	}

	// --- Services ---
	services := api.Services{
		Auth: service.NewAuthService(st.users, cfg.JWT.Secret, cfg.JWT.Expiration),
		Catalog: service.NewCatalogService(st.categories, st.equipment, service.CatalogPolicy{
			PropagateRename: cfg.Catalog.PropagateCategoryRename,
			DeletePolicy:    cfg.Catalog.CategoryDeletePolicy,
		}, logger),
		Workout:    service.NewWorkoutService(st.history, st.equipment),
		Generation: service.NewGenerationService(model, images, logger),
	}

	// --- Router ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(logger), m.Middleware())
	api.SetupRoutes(router, services, m.Handler())

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(router)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      corsHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // image generation is slow
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", cfg.Server.Address, err)
		}
		return nil
	case <-quit:
	}
	logger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exiting")
	return nil
}
