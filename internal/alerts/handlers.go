package alerts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nwatch/patrol-console/internal/app"
	"github.com/nwatch/patrol-console/internal/gateway"
)

// ResolveRequest represents a request to resolve a panic alert
type ResolveRequest struct {
	AlertID string `json:"alert_id"`
	Status  string `json:"status"`
}

// Handlers contains HTTP handlers for panic alerts
type Handlers struct {
	app     *app.App
	service *Service
}

// NewHandlers creates a new alerts handlers instance
func NewHandlers(a *app.App, gw *gateway.Client) *Handlers {
	return &Handlers{app: a, service: NewService(a, gw)}
}

// ListHandler returns outstanding panic alerts
func (h *Handlers) ListHandler(c *gin.Context) {
	alerts, err := h.service.List(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// ResolveHandler marks a panic alert as handled
func (h *Handlers) ResolveHandler(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AlertID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	err := h.service.Resolve(c.Request.Context(), req.AlertID, req.Status)
	if errors.Is(err, ErrAlertNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Alert not found"})
		return
	}
	if err != nil {
		respondGatewayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Alert resolved"})
}

func respondGatewayError(c *gin.Context, err error) {
	if be, ok := gateway.AsBackendError(err); ok {
		c.JSON(be.Status, gin.H{"error": be.Message})
		return
	}
	if gateway.IsNetworkError(err) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Backend unreachable"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
