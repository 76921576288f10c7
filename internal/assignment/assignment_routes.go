package assignment

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authed, actor gin.HandlerFunc) {
	assignments := r.Group("/asignaciones", authed, actor)
	{
		assignments.POST("", handler.Assign)
		assignments.DELETE("/:id", handler.Remove)
	}

	r.GET("/vacantes/:id/asignaciones", authed, actor, handler.ListByVacancy)
}
