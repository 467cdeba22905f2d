package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/pkg/auth"
	"github.com/telesante/telesante-api/pkg/httputil"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

type AuthMiddleware struct {
	jwtService auth.JWTService
}

func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate verifies the bearer token and stores the caller's
// identity in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, httputil.Response{Status: "error", Message: "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, httputil.Response{Status: "error", Message: "invalid authorization format"})
			c.Abort()
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, httputil.Response{Status: "error", Message: "invalid token"})
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allowed set.
func (m *AuthMiddleware) RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if !allowed[role] {
			c.JSON(http.StatusForbidden, httputil.Response{Status: "error", Message: "insufficient role"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Actor extracts the authenticated caller from the gin context. The
// second return is false when authentication middleware did not run or
// the stored ID is malformed.
func Actor(c *gin.Context) (model.ActorRef, bool) {
	id, err := uuid.Parse(c.GetString(ContextUserID))
	if err != nil {
		return model.ActorRef{}, false
	}
	return model.ActorRef{ID: id, Role: c.GetString(ContextUserRole)}, true
}
