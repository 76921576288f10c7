package company

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authed, actor gin.HandlerFunc) {
	companies := r.Group("/empresas", authed, actor)
	{
		companies.POST("", handler.Create)
		companies.GET("", handler.ListMine)
		companies.GET("/:id", handler.GetByID)
		companies.PUT("/:id", handler.Update)
		companies.DELETE("/:id", handler.Delete)
		companies.POST("/:id/logo", handler.UploadLogo)
	}
}
