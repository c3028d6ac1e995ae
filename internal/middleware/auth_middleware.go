package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/namansharma28/gravitas-backend/internal/app/models/dto"
	"github.com/namansharma28/gravitas-backend/internal/pkg/auth"
)

const (
	userIDKey    = "userID"
	userEmailKey = "userEmail"
)

// RequireSession validates the bearer session token and stores the
// caller's identity on the context. Missing or bad tokens abort with
// 401 before any handler runs, so protected writes never execute.
func RequireSession(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(userEmailKey, claims.Email)
		c.Next()
	}
}

// RequireAdmin validates the bearer admin token. Admin tokens come from
// a separate signing authority; a valid user session never passes here.
func RequireAdmin(adminTokens *auth.AdminTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		if _, err := adminTokens.ValidateToken(token); err != nil {
			abortUnauthorized(c)
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized"))
}

// GetUserID returns the authenticated user's id set by RequireSession
func GetUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
