package application

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authed, actor gin.HandlerFunc) {
	applications := r.Group("/postulaciones", authed, actor)
	{
		applications.POST("", handler.Apply)
		applications.GET("", handler.ListMine)
		applications.GET("/:id", handler.GetByID)
		applications.PATCH("/:id/estado", handler.ChangeStatus)
		applications.POST("/:id/notas", handler.Annotate)
	}

	r.GET("/vacantes/:id/postulaciones", authed, actor, handler.ListByVacancy)
}
