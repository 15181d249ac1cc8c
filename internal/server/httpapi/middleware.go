package httpapi

import (
	"net/http"
	"strings"

	"github.com/dkoloskov/wellspring/internal/server/auth"
	"github.com/dkoloskov/wellspring/internal/shared"
	"github.com/gin-gonic/gin"
)

const userIDContextKey = "userID"

// userIDFromHeader extracts and verifies the bearer token from an
// Authorization header value and returns the token subject.
func userIDFromHeader(header string, secretKey []byte) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", shared.ErrorInvalidAuthHeaderFormat
	}
	return auth.GetUserIDFromToken(parts[1], secretKey)
}

// requireAuth verifies the Authorization bearer token and stores the token
// subject in the request context. Missing, malformed, expired, and forged
// tokens all abort the same way.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := userIDFromHeader(c.GetHeader("Authorization"), s.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorEnvelope("Not authorized"))
			return
		}

		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDContextKey)
}
