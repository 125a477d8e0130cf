package member

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nwatch/patrol-console/internal/app"
	"github.com/nwatch/patrol-console/internal/gateway"
)

// Handlers contains HTTP handlers for the member companion
type Handlers struct {
	app     *app.App
	service *Service
}

// NewHandlers creates a new member handlers instance
func NewHandlers(a *app.App, gw *gateway.Client) *Handlers {
	return &Handlers{app: a, service: NewService(a, gw)}
}

// LoginHandler handles member login
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

// SignupHandler handles member signup
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
		message = "Signup successful"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// PostsHandler lists forum posts
func (h *Handlers) PostsHandler(c *gin.Context) {
	posts, err := h.service.Posts(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// CreatePostHandler publishes a forum post
func (h *Handlers) CreatePostHandler(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), req)
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// PanicHandler raises a member SOS alert
func (h *Handlers) PanicHandler(c *gin.Context) {
	var req PanicRequest
	// An empty body is a valid SOS; location and message are optional.
	_ = c.ShouldBindJSON(&req)

	if err := h.service.Panic(c.Request.Context(), req); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Alert sent. Help is on the way."})
}

// SubscriptionHandler returns the member's subscription state
func (h *Handlers) SubscriptionHandler(c *gin.Context) {
	sub, err := h.service.Subscription(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// CancelSubscriptionHandler cancels the member's subscription. Requires an
// explicit confirm flag; cancellation is destructive.
func (h *Handlers) CancelSubscriptionHandler(c *gin.Context) {
	var req CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if !req.Confirm {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cancellation requires confirm: true"})
		return
	}

	if err := h.service.CancelSubscription(c.Request.Context()); err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Subscription cancelled"})
}

// StatsHandler returns neighborhood patrol statistics
func (h *Handlers) StatsHandler(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondGatewayError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
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
