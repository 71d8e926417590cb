package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"pdf-csv-extractor/internal/config"
	"pdf-csv-extractor/internal/handler"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	cfg := container.GetConfig()
	logger := container.GetLogger()

	// Handlers
	uploadHandler := handler.NewUploadHandler(
		container.GetConversionService(),
		cfg.GetMaxFileSize(),
		cfg.GetExposeErrorDetails(),
		logger,
	)

	// Router
	router := handler.NewRouter(uploadHandler, logger)

	server := &http.Server{
		Addr:    ":" + cfg.GetServerPort(),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server listening",
			"address", server.Addr,
			"backend", cfg.GetExtractorBackend(),
			"upload_path", cfg.GetUploadPath(),
			"max_file_size", cfg.GetMaxFileSize(),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", err)
		os.Exit(1)
	}

	logger.Info("Server exited")
}
