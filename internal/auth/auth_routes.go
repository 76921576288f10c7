package auth

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authed, lockout gin.HandlerFunc) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", lockout, handler.Login)
		auth.POST("/refresh", handler.Refresh)
		auth.POST("/logout", handler.Logout)
		auth.GET("/me", authed, handler.Me)
	}
}
