package server

import (
	"github.com/nwatch/patrol-console/internal/alerts"
	"github.com/nwatch/patrol-console/internal/auth"
	"github.com/nwatch/patrol-console/internal/gateway"
	"github.com/nwatch/patrol-console/internal/health"
	"github.com/nwatch/patrol-console/internal/member"
	"github.com/nwatch/patrol-console/internal/patrol"
	"github.com/nwatch/patrol-console/internal/scanlog"
)

// SetupRoutes configures all the routes for the application
func (s *Server) SetupRoutes(gw *gateway.Client, patrolService *patrol.Service, queue *scanlog.Queue) {
	// Register health check handlers
	var queueDepth health.QueueDepth
	if queue != nil {
		queueDepth = queue
	}
	healthHandlers := health.NewHandlers(s.app, queueDepth)
	s.router.GET("/", healthHandlers.RootHandler)
	s.router.GET("/health", healthHandlers.HealthCheckHandler)

	// Register officer auth handlers
	authHandlers := auth.NewHandlers(s.app, gw)
	s.router.POST("/auth/login", authHandlers.LoginHandler)
	s.router.POST("/auth/demo", authHandlers.DemoLoginHandler)
	s.router.POST("/auth/signup", authHandlers.SignupHandler)
	s.router.POST("/auth/logout", authHandlers.LogoutHandler)
	s.router.GET("/auth/status", authHandlers.StatusHandler)
	s.router.GET("/auth/profile", authHandlers.ProfileHandler)

	// Register patrol handlers
	patrolHandlers := patrol.NewHandlers(s.app, patrolService)
	s.router.GET("/patrol/route", patrolHandlers.RouteHandler)
	s.router.POST("/patrol/route/reload", patrolHandlers.ReloadRouteHandler)
	s.router.GET("/patrol/compliance", patrolHandlers.ComplianceHandler)
	s.router.POST("/patrol/scan/arm", patrolHandlers.ArmHandler)
	s.router.POST("/patrol/scan/decode", patrolHandlers.DecodeHandler)
	s.router.POST("/patrol/scan/cancel", patrolHandlers.CancelHandler)
	s.router.GET("/patrol/scan/status", patrolHandlers.StatusHandler)
	s.router.POST("/patrol/scan/comment", patrolHandlers.CommentHandler)
	s.router.GET("/patrol/checkpoints/:id/qr", patrolHandlers.CheckpointQRHandler)
	s.router.GET("/patrol/scanlog", patrolHandlers.ScanLogHandler)
	s.router.POST("/patrol/scanlog/flush", patrolHandlers.FlushScanLogHandler)

	// Register officer alert handlers
	alertHandlers := alerts.NewHandlers(s.app, gw)
	s.router.GET("/alerts", alertHandlers.ListHandler)
	s.router.POST("/alerts/resolve", alertHandlers.ResolveHandler)

	// Register member companion handlers
	memberHandlers := member.NewHandlers(s.app, gw)
	s.router.POST("/member/login", memberHandlers.LoginHandler)
	s.router.POST("/member/signup", memberHandlers.SignupHandler)
	s.router.GET("/member/posts", memberHandlers.PostsHandler)
	s.router.POST("/member/posts", memberHandlers.CreatePostHandler)
	s.router.POST("/member/panic", memberHandlers.PanicHandler)
	s.router.GET("/member/subscription", memberHandlers.SubscriptionHandler)
	s.router.POST("/member/subscription/cancel", memberHandlers.CancelSubscriptionHandler)
	s.router.GET("/member/stats", memberHandlers.StatsHandler)
}
