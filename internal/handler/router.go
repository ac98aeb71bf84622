package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fridgehub/groups/internal/config"
	"fridgehub/groups/internal/handler/middleware"
	jwtpkg "fridgehub/groups/pkg/jwt"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	authHandler *AuthHandler,
	groupHandler *GroupHandler,
	notificationHandler *NotificationHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public auth routes
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtManager))
	{
		protected.POST("/auth/logout", authHandler.Logout)

		// Groups & invites
		protected.POST("/groups", groupHandler.Create)
		protected.GET("/groups/my-groups", groupHandler.MyGroups)
		protected.POST("/groups/:groupId/regenerate-invite", groupHandler.RegenerateInvite)
		protected.GET("/groups/by-invite/:code", groupHandler.PreviewInvite)
		protected.POST("/groups/join/:code", groupHandler.Join)
		protected.GET("/groups/:groupId/members", groupHandler.ListMembers)
		protected.POST("/groups/:groupId/leave", groupHandler.Leave)
		protected.POST("/groups/:groupId/email-invite", groupHandler.EmailInvite)

		// Notifications
		protected.GET("/notifications", notificationHandler.List)
		protected.POST("/notifications/:id/read", notificationHandler.MarkRead)
	}

	return r
}
