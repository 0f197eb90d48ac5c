package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	appLogger "github.com/jetfriend/jetfriend-api/app/logger"
	"github.com/jetfriend/jetfriend-api/app/observability/metrics"
	"github.com/jetfriend/jetfriend-api/app/tracer"
	"github.com/jetfriend/jetfriend-api/config"
	"github.com/jetfriend/jetfriend-api/internal/api/classify"
	"github.com/jetfriend/jetfriend-api/internal/api/enrich"
	generativeAI "github.com/jetfriend/jetfriend-api/internal/api/generative_ai"
	"github.com/jetfriend/jetfriend-api/internal/api/places"
	"github.com/jetfriend/jetfriend-api/internal/api/validation"
	"github.com/jetfriend/jetfriend-api/internal/router"
)

func main() {
	// --- Initial Loading ---
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	// --- Logger Setup ---
	logger := setupLogger()
	slog.SetDefault(logger)

	// --- Application Context & Shutdown ---
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	tracer.InitTracingAndMetrics(cfg.Handlers.Prometheus.Port)
	metrics.InitAppMetrics()

	// --- Dependency Injection ---
	classifier := classify.NewServiceImpl(logger)

	placesRepo := places.NewGoogleRepository(os.Getenv("GOOGLE_PLACES_API_KEY"), logger)
	placesService := places.NewServiceImpl(placesRepo, cfg.Enrichment.MaxCandidates, cfg.Enrichment.MaxRadiusMeters, logger)

	urlChecker := validation.NewURLChecker(logger)
	geocodeRepo := validation.NewGoogleGeocodeRepository(os.Getenv("GOOGLE_GEOCODING_API_KEY"), logger)
	geocoder := validation.NewGeocodeVerifier(geocodeRepo, logger)
	contacts := validation.NewContactVerifier(urlChecker, cfg.Enrichment.ProbeTimeout, logger)
	imageSearchRepo := validation.NewGoogleImageSearchRepository(
		os.Getenv("GOOGLE_SEARCH_API_KEY"), os.Getenv("GOOGLE_SEARCH_ENGINE_ID"), logger)
	images := validation.NewImageSourcer(imageSearchRepo, urlChecker, cfg.Enrichment.ProbeTimeout, logger)

	aiClient, err := generativeAI.NewAIClient(ctx, cfg.AI, logger)
	if err != nil {
		logger.Error("Failed to initialize AI client", slog.Any("error", err))
		os.Exit(1)
	}

	enrichService := enrich.NewServiceImpl(
		classifier, placesService, aiClient,
		urlChecker, geocoder, contacts, images,
		cfg.Enrichment, logger,
	)
	chatHandler := enrich.NewHandler(enrichService, aiClient, logger)

	// --- Router Setup ---
	mainRouter := router.SetupRouter(&router.Config{
		ChatHandler: chatHandler,
	})

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(appLogger.StructuredLogger(logger))
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.StripSlashes)
	mux.Use(middleware.Timeout(cfg.Server.Timeout))
	mux.Use(middleware.Compress(5, "application/json"))
	mux.Mount("/", mainRouter)

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	// --- Start Server Goroutine ---
	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	// --- Wait for Shutdown Signal ---
	<-ctx.Done()

	// --- Graceful Shutdown ---
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" { // Default to development if not set
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production or other environments
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
