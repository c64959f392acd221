package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/jwt"

	"github.com/zharkyn/carmarket/internal/domain"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

// Auth returns a gin middleware that validates a Bearer token and stores the
// authenticated user's id and role in the request context. Requests without
// a token pass through unauthenticated; handlers that require a user are
// guarded separately by RequireAuth.
func Auth(jwtSvc jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			abortUnauthorized(c, "invalid authorization header")
			return
		}

		token, err := jwtSvc.ValidateAndParse(strings.TrimSpace(raw))
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		userID, err := strconv.ParseUint(token.UserID, 10, 64)
		if err != nil {
			abortUnauthorized(c, "invalid token subject")
			return
		}

		role := domain.RoleUser
		if len(token.Roles) > 0 {
			role = token.Roles[0]
		}

		c.Set(CtxUserID, uint(userID))
		c.Set(CtxUserRole, role)
		c.Next()
	}
}

// RequireAuth aborts with 401 unless Auth has placed a user in the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(CtxUserID); !ok {
			abortUnauthorized(c, "authentication required")
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the authenticated user has the admin
// role. It implies RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(CtxUserRole)
		if !ok {
			abortUnauthorized(c, "authentication required")
			return
		}
		if role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code":    http.StatusForbidden,
				"message": "admin access required",
				"data":    nil,
			})
			return
		}
		c.Next()
	}
}

// CurrentActor extracts the authenticated principal from the context.
// The boolean is false for unauthenticated requests.
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	id, ok := c.Get(CtxUserID)
	if !ok {
		return domain.Actor{}, false
	}
	role, _ := c.Get(CtxUserRole)
	roleStr, _ := role.(string)
	return domain.Actor{ID: id.(uint), Role: roleStr}, true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": message,
		"data":    nil,
	})
}
