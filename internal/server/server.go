package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nwatch/patrol-console/internal/app"
	"github.com/nwatch/patrol-console/internal/config"
	"github.com/nwatch/patrol-console/pkg/logger"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	app    *app.App
	config *config.Config
	srv    *http.Server
}

// NewServer creates a new server instance
func NewServer(app *app.App, config *config.Config) *Server {
	// Route gin's own logging through the application log file
	gin.DefaultWriter = io.MultiWriter(os.Stdout, logger.GetWriter(app.Logger))
	gin.DefaultErrorWriter = io.MultiWriter(os.Stderr, logger.GetWriter(app.Logger))

	r := gin.Default()
	r.Use(cors.New(config.GetCorsConfig()))

	return &Server{
		router: r,
		app:    app,
		config: config,
	}
}

// Router returns the gin router
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:    ":" + s.config.ServerPort,
		Handler: s.router,
	}

	go func() {
		s.app.Logger.Printf("Patrol console running on :%s", s.config.ServerPort)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.app.Logger.Printf("Server error: %v\n", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}

	s.app.Logger.Println("Shutting down server...")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.app.Logger.Printf("Server forced to shutdown: %v\n", err)
		return fmt.Errorf("server forced to shutdown: %v", err)
	}

	s.app.Logger.Println("Server exited")
	return nil
}
