package main

import (
	"context"
	"ctchen222/tic-tac-toe-minimax/internal/api/controller"
	"ctchen222/tic-tac-toe-minimax/internal/api/service"
	"ctchen222/tic-tac-toe-minimax/internal/bot"
	"ctchen222/tic-tac-toe-minimax/internal/config"
	"ctchen222/tic-tac-toe-minimax/internal/hub"
	"ctchen222/tic-tac-toe-minimax/internal/logger"
	"ctchen222/tic-tac-toe-minimax/internal/server"
	"ctchen222/tic-tac-toe-minimax/internal/telemetry"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	logger.Init(cfg.LogLevel, cfg.TelemetryEnabled)
	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Move selection is shared by the rooms and the analysis API
	selector := bot.NewMinimax()

	analysisService := service.NewAnalysisService(selector)
	analysisController := controller.NewAnalysisController(analysisService)

	h := hub.NewHub(selector)
	go h.Run()

	srv := server.NewServer(h, analysisController, cfg.WebDir)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("HTTP server started", "addr", cfg.HTTPAddr, "web.dir", cfg.WebDir)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ListenAndServe failed", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	h.Shutdown()

	slog.Info("Server exiting")
}
