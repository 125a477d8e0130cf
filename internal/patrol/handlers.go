package patrol

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nwatch/patrol-console/internal/app"
	"github.com/nwatch/patrol-console/internal/gateway"
)

// Handlers contains HTTP handlers for the patrol workflow
type Handlers struct {
	app     *app.App
	service *Service
}

// NewHandlers creates a new patrol handlers instance
func NewHandlers(a *app.App, service *Service) *Handlers {
	return &Handlers{app: a, service: service}
}

// RouteHandler returns the assigned route and scan progress, loading the
// route on first access.
func (h *Handlers) RouteHandler(c *gin.Context) {
	progress, err := h.service.Progress()
	if errors.Is(err, ErrNoRoute) {
		progress, err = h.service.LoadRoute(c.Request.Context())
	}
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// ReloadRouteHandler re-fetches the route, resetting scan progress.
func (h *Handlers) ReloadRouteHandler(c *gin.Context) {
	progress, err := h.service.LoadRoute(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// ComplianceHandler returns the officer's compliance metrics.
func (h *Handlers) ComplianceHandler(c *gin.Context) {
	metrics, err := h.service.Compliance(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"metrics": metrics})
}

// ArmHandler opens the capture surface for one scan cycle.
func (h *Handlers) ArmHandler(c *gin.Context) {
	var req ArmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	err := h.service.Scans().Arm(req.PermissionGranted)
	switch {
	case errors.Is(err, ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{
			"error":            "Camera permission denied",
			"needs_permission": true,
		})
		return
	case errors.Is(err, ErrScanInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "A scan is already in flight"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": h.service.Scans().State().String()})
}

// DecodeHandler feeds one decoded payload into the scan session. The
// outcome lands asynchronously; clients follow it via StatusHandler.
func (h *Handlers) DecodeHandler(c *gin.Context) {
	var req DecodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Data == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	accepted, err := h.service.Scans().Submit(req.Data)
	if errors.Is(err, ErrNotArmed) {
		c.JSON(http.StatusConflict, gin.H{"error": "Scan session is not armed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accepted": accepted,
		"state":    h.service.Scans().State().String(),
	})
}

// CancelHandler closes the capture surface, discarding any in-flight scan.
func (h *Handlers) CancelHandler(c *gin.Context) {
	h.service.Scans().Cancel()
	c.JSON(http.StatusOK, gin.H{"state": StateIdle.String()})
}

// StatusHandler reports the scan session state and the last outcome.
func (h *Handlers) StatusHandler(c *gin.Context) {
	resp := StatusResponse{State: h.service.Scans().State().String()}
	if result, ok := h.service.Scans().LastResult(); ok {
		resp.LastResult = &result
	}
	c.JSON(http.StatusOK, resp)
}

// CommentHandler sets the comment carried by the next scan log.
func (h *Handlers) CommentHandler(c *gin.Context) {
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	h.service.Scans().SetComment(req.Comment)
	c.JSON(http.StatusOK, gin.H{"msg": "Comment set"})
}

// CheckpointQRHandler renders a checkpoint's QR code as a PNG data URI.
func (h *Handlers) CheckpointQRHandler(c *gin.Context) {
	id := c.Param("id")
	dataURI, err := h.service.CheckpointQR(id)
	switch {
	case errors.Is(err, ErrNoRoute):
		c.JSON(http.StatusConflict, gin.H{"error": "No route loaded"})
		return
	case errors.Is(err, ErrCheckpointNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Checkpoint not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"qrcode": dataURI})
}

// ScanLogHandler lists scan logs parked in the offline queue.
func (h *Handlers) ScanLogHandler(c *gin.Context) {
	entries, err := h.service.PendingLogs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": entries})
}

// FlushScanLogHandler pushes queued scan logs to the backend.
func (h *Handlers) FlushScanLogHandler(c *gin.Context) {
	sent, err := h.service.FlushLogs(c.Request.Context())
	if err != nil {
		if gateway.IsNetworkError(err) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Backend unreachable", "sent": sent})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "sent": sent})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": sent})
}

// respondGatewayError translates gateway failures into console responses.
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
