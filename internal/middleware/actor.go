package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/juandiego305/Gestion-candidatos/internal/identity"
	"github.com/juandiego305/Gestion-candidatos/internal/shared/response"
)

const actorContextKey = "actor"

// ActorLoader turns an authenticated user id into a full Actor, including
// the primary-store role attribute the Role Resolver reads first.
type ActorLoader interface {
	LoadActor(ctx context.Context, userID int64) (identity.Actor, error)
}

// ActorContext must run after AuthMiddleware. It loads the caller's primary
// store record so services see the freshest local role, not the one frozen
// into the JWT at login.
func ActorContext(loader ActorLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated", nil)
			c.Abort()
			return
		}

		actor, err := loader.LoadActor(c.Request.Context(), userID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unknown user", nil)
			c.Abort()
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// GetActor returns the Actor placed by ActorContext.
func GetActor(c *gin.Context) (identity.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return identity.Actor{}, false
	}
	actor, ok := v.(identity.Actor)
	return actor, ok
}

// MustActor is for handlers behind ActorContext; a missing actor there is a
// wiring bug, and the zero Actor fails every authorization check anyway.
func MustActor(c *gin.Context) identity.Actor {
	actor, _ := GetActor(c)
	return actor
}
