package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nwatch/patrol-console/internal/app"
	"github.com/nwatch/patrol-console/internal/gateway"
)

// Handlers contains HTTP handlers for officer authentication
type Handlers struct {
	app     *app.App
	service *Service
}

// NewHandlers creates a new auth handlers instance
func NewHandlers(a *app.App, gw *gateway.Client) *Handlers {
	return &Handlers{app: a, service: NewService(a, gw)}
}

// LoginHandler handles officer login
func (h *Handlers) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields"})
		return
	}

	user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondGatewayError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Logged in successfully", "user": user})
}

// DemoLoginHandler starts a demo session with no backend dependency
func (h *Handlers) DemoLoginHandler(c *gin.Context) {
	user := h.service.DemoLogin()
	c.JSON(http.StatusOK, gin.H{"msg": "Demo session started", "user": user})
}

// SignupHandler handles officer signup
func (h *Handlers) SignupHandler(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields"})
		return
	}

	message, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	if message == "" {
		message = "Signup submitted for approval"
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// LogoutHandler clears the console session
func (h *Handlers) LogoutHandler(c *gin.Context) {
	h.service.Logout()
	c.JSON(http.StatusOK, gin.H{"msg": "Logged out"})
}

// StatusHandler reports whether a session is active
func (h *Handlers) StatusHandler(c *gin.Context) {
	resp := StatusResponse{
		Demo:      h.app.Session.IsDemo(),
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if user, ok := h.app.Session.User(); ok {
		resp.LoggedIn = true
		resp.Email = user.Email
	}
	c.JSON(http.StatusOK, resp)
}

// ProfileHandler returns the signed-in officer's profile
func (h *Handlers) ProfileHandler(c *gin.Context) {
	profile, err := h.service.Profile(c.Request.Context())
	if errors.Is(err, ErrNotLoggedIn) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
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
