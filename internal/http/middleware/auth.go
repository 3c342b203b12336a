// README: Bearer session auth middleware.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"speedyrider/internal/types"
)

const riderIDKey = "rider_id"

// SessionVerifier resolves a bearer token to the rider it belongs to.
type SessionVerifier interface {
	ResolveSession(ctx context.Context, token string) (types.ID, error)
}

func Auth(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		id, err := verifier.ResolveSession(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session invalid or expired"})
			return
		}
		c.Set(riderIDKey, id)
		c.Next()
	}
}

// CallerRiderID returns the rider the request was authenticated as.
func CallerRiderID(c *gin.Context) types.ID {
	if v, ok := c.Get(riderIDKey); ok {
		if id, ok := v.(types.ID); ok {
			return id
		}
	}
	return ""
}
