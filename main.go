package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"croprec/config"
	"croprec/crop"
	"croprec/db"
	chttp "croprec/http"
	"croprec/inference"
	"croprec/logging"
	"croprec/translate"
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run owns every resource it opens so deferred cleanup happens before the
// process exits.
func run(configPath string) error {
	// 1. Load config
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync()

	// 2. Load model; serving without one is not an option
	predictor, err := inference.LoadPredictor(cfg.Model.Path, cfg.Model.ManifestPath)
	if err != nil {
		logger.Error("failed to load model",
			zap.String("model", cfg.Model.Path),
			zap.String("manifest", cfg.Model.ManifestPath),
			zap.Error(err))
		return fmt.Errorf("failed to load model: %w", err)
	}
	manifest := predictor.Manifest()
	logger.Info("model loaded",
		zap.String("run_id", manifest.RunID),
		zap.Strings("features", manifest.Features),
		zap.Time("trained_at", manifest.CreatedAt))

	// 3. Translation
	translator, err := newTranslator(cfg.Translation, logger)
	if err != nil {
		return fmt.Errorf("failed to init translator: %w", err)
	}
	resolver := crop.NewResolver(translator, cfg.Translation.Budget, logger)
	service := inference.NewService(predictor, resolver, logger)

	// 4. Training log (optional)
	var runs chttp.RunLister
	if cfg.Database.Path != "" {
		store, err := db.Open(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
		}
		defer store.Close()
		runs = store
		logger.Info("database initialized", zap.String("path", cfg.Database.Path))
	}

	// 5. Start HTTP server
	server := chttp.NewServer(chttp.ServerConfig{
		Port:           cfg.HTTP.Port,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RatePerSecond:  cfg.HTTP.RatePerSecond,
		RateBurst:      cfg.HTTP.RateBurst,
	}, chttp.NewHandler(service, runs, logger), logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// 6. Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server failed", zap.Error(err))
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("exiting")
	return nil
}

func newTranslator(cfg config.TranslationConfig, logger *zap.Logger) (translate.Translator, error) {
	if !cfg.Enabled {
		logger.Info("translation disabled, serving source text")
		return translate.Disabled{}, nil
	}
	google := translate.NewGoogleTranslator(cfg.BaseURL, cfg.Timeout)
	resilient, err := translate.NewResilient(google, cfg.Options(), logger.Named("translate"))
	if err != nil {
		return nil, err
	}
	return resilient, nil
}
