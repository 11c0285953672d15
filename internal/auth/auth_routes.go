package auth

import (
	"github.com/gin-gonic/gin"

	"go-hrms/internal/middleware"
)

// RegisterRoutes mounts login on public and the rest on protected, which
// already carries the auth middleware. guard (HR) protects credential
// maintenance.
func RegisterRoutes(public, protected *gin.RouterGroup, handler *Handler, guard gin.HandlerFunc) {
	open := public.Group("/auth")
	{
		open.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		open.POST("/refresh", middleware.RateLimitByIP(1, 5), handler.Refresh)
		open.POST("/logout", handler.Logout)
	}

	auth := protected.Group("/auth")
	{
		auth.GET("/me", handler.Me)
		auth.PUT("/credentials", guard, handler.SetPassword)
	}
}
