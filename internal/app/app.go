package app

import (
	"log"
	"time"

	"github.com/nwatch/patrol-console/internal/config"
	"github.com/nwatch/patrol-console/internal/session"
)

// App holds shared application state and resources
type App struct {
	Session *session.Store
	Config  *config.Config
	Logger  *log.Logger

	StartTime time.Time // Track startup time for health checks
}

// NewApp creates a new App instance with initialized resources
func NewApp(cfg *config.Config, logger *log.Logger) *App {
	return &App{
		Session:   session.NewStore(),
		Config:    cfg,
		Logger:    logger,
		StartTime: time.Now(),
	}
}
