package config

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/joho/godotenv"
)

// Authorization header schemes supported by the backend. Different backend
// deployments expect different prefixes, so the scheme is configurable.
const (
	SchemeToken  = "Token"
	SchemeBearer = "Bearer"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	BackendBaseURL string
	DataDir        string
	LogDir         string
	AuthScheme     string
	RequestTimeout time.Duration
	ScanTimeout    time.Duration
}

// NewConfig creates a new configuration with default values, overridden by
// environment variables. A .env file in the working directory is loaded
// first if present.
func NewConfig() *Config {
	// Missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:     "3000",
		BackendBaseURL: "http://localhost:8000/api",
		DataDir:        "data",
		LogDir:         "logs",
		AuthScheme:     SchemeToken,
		RequestTimeout: 10 * time.Second,
		ScanTimeout:    10 * time.Second,
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		cfg.ServerPort = v
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.BackendBaseURL = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
	if v := os.Getenv("AUTH_SCHEME"); v != "" {
		switch v {
		case "bearer", "Bearer":
			cfg.AuthScheme = SchemeBearer
		default:
			cfg.AuthScheme = SchemeToken
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("SCAN_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.ScanTimeout = time.Duration(secs) * time.Second
		}
	}

	return cfg
}

// EnsureDataDir ensures the data directory exists
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// GetCorsConfig returns CORS configuration for the application
func (c *Config) GetCorsConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.ExposeHeaders = []string{"Content-Length", "Content-Type"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	return corsConfig
}
