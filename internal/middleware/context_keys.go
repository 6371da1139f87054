package middleware

import "github.com/gin-gonic/gin"

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// actorHeader carries the acting user's identity from the upstream gateway.
// Authentication itself happens outside this service.
const actorHeader = "X-Actor-ID"

// defaultActor is recorded in audit fields when no actor header is present
// (scheduled jobs, local tooling).
const defaultActor = "system"

// ActorMiddleware resolves the acting user for audit fields from the request
// headers and stores it in the Gin context.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetHeader(actorHeader)
		if actor == "" {
			actor = defaultActor
		}
		c.Set(string(actorIDKey), actor)
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user ID from the Gin context.
func GetActorFromContext(c *gin.Context) string {
	if actor, ok := c.Get(string(actorIDKey)); ok {
		if s, ok := actor.(string); ok && s != "" {
			return s
		}
	}
	return defaultActor
}
