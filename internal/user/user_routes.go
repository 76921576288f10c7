package user

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authed, actor gin.HandlerFunc) {
	r.POST("/registro", handler.Register)

	users := r.Group("/usuarios")
	users.Use(authed, actor)
	{
		users.GET("", handler.List)
		users.GET("/:id", handler.GetByID)
		users.POST("/crear_con_rol", handler.CreateWithRole)
		users.PATCH("/:id/actualizar_rol", handler.UpdateRole)
	}
}
