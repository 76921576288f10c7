package favorite

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, authed, actor gin.HandlerFunc) {
	favorites := r.Group("/favoritos", authed, actor)
	{
		favorites.POST("", handler.Add)
		favorites.GET("", handler.List)
		favorites.DELETE("/:id", handler.Remove)
	}
}
