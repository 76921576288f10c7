package vacancy

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authed, actor gin.HandlerFunc) {
	vacancies := r.Group("/vacantes", authed, actor)
	{
		vacancies.POST("", handler.Create)
		vacancies.GET("", handler.List)
		vacancies.GET("/:id", handler.GetByID)
		vacancies.PUT("/:id", handler.Update)
		vacancies.POST("/:id/publicar", handler.Publish)
		vacancies.DELETE("/:id", handler.Delete)
	}
}
