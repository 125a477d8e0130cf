package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nwatch/patrol-console/internal/app"
	"github.com/nwatch/patrol-console/internal/config"
	"github.com/nwatch/patrol-console/internal/gateway"
	"github.com/nwatch/patrol-console/internal/patrol"
	"github.com/nwatch/patrol-console/internal/scanlog"
	"github.com/nwatch/patrol-console/internal/server"
	"github.com/nwatch/patrol-console/pkg/logger"
)

func main() {
	cfg := config.NewConfig()

	appLogger, err := logger.SetupLogging(cfg.LogDir)
	if err != nil {
		appLogger = logger.SetupFallbackLogger()
	}
	defer logger.CloseLogger()

	if err := cfg.EnsureDataDir(); err != nil {
		appLogger.Fatalf("Failed to create data directory: %v", err)
	}

	application := app.NewApp(cfg, appLogger)

	gw := gateway.NewClient(cfg.BackendBaseURL, cfg.AuthScheme, cfg.RequestTimeout, application.Session, appLogger)

	queue, err := scanlog.Open(filepath.Join(cfg.DataDir, "scanlog.db"), appLogger)
	if err != nil {
		appLogger.Printf("Offline scan log disabled: %v", err)
		queue = nil
	} else {
		defer queue.Close()
	}

	patrolService := patrol.NewService(application, gw, queue)

	srv := server.NewServer(application, cfg)
	srv.SetupRoutes(gw, patrolService, queue)

	if err := srv.Start(); err != nil {
		appLogger.Fatalf("Failed to start server: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
