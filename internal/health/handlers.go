package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nwatch/patrol-console/internal/app"
)

// Version is the console version reported by health checks.
const Version = "1.0.0"

// QueueDepth reports how many scan logs wait in the offline queue.
// Implemented by *scanlog.Queue; may be nil.
type QueueDepth interface {
	Len() (int, error)
}

// Handlers contains HTTP handlers for health checks
type Handlers struct {
	app   *app.App
	queue QueueDepth
}

// NewHandlers creates a new health handlers instance
func NewHandlers(a *app.App, queue QueueDepth) *Handlers {
	return &Handlers{app: a, queue: queue}
}

// RootHandler handles the root endpoint for container health checks
func (h *Handlers) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"uptime":  time.Since(h.app.StartTime).String(),
		"version": Version,
	})
}

// HealthCheckHandler handles the health check endpoint
func (h *Handlers) HealthCheckHandler(c *gin.Context) {
	_, loggedIn := h.app.Session.Token()

	pending := 0
	if h.queue != nil {
		n, err := h.queue.Len()
		if err != nil {
			h.app.Logger.Printf("Health check could not read scan log queue: %v", err)
		} else {
			pending = n
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"uptime":            time.Since(h.app.StartTime).String(),
		"version":           Version,
		"logged_in":         loggedIn,
		"demo":              h.app.Session.IsDemo(),
		"pending_scan_logs": pending,
		"timestamp":         time.Now().Format(time.RFC3339),
	})
}
