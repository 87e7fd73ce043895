package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"logbookocr/internal/app"
	"logbookocr/internal/config"
	"logbookocr/internal/handler"
	"logbookocr/internal/logger"
	"logbookocr/internal/router"
)

// @title Logbook OCR API
// @version 1.0
// @description Extracts flight records from scanned pilot logbook pages.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize extraction pipeline
	pipeline, err := app.New(cfg, app.Options{}, zlog)
	if err != nil {
		return fmt.Errorf("failed to initialize extraction pipeline: %w", err)
	}
	defer func() { _ = pipeline.Close() }()

	// Initialize handlers
	ocrH := handler.NewOCRHandler(pipeline.Service, cfg.OCR.MaxFileSizeBytes(), zlog)
	healthH := handler.NewHealthHandler(pipeline.Service)

	// Setup router
	r := router.Setup(cfg, zlog, ocrH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("Server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("provider", pipeline.Service.Provider()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zlog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
