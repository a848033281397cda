package middleware

import (
	"fleetops/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
)

// ActorContext extracts the opaque actor identity supplied by the upstream
// gateway. The engine never validates it; it is used for audit attribution
// only.
func ActorContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader("X-Actor-ID")
		c.Set("actor_id", actorID)

		ctx := contextutil.WithActorID(c.Request.Context(), actorID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
