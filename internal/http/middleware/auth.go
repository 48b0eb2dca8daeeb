package middleware

import (
	"context"
	"net/http"
	"strings"

	"bikerental/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	requestContextKey = "request_context"
	userRoleKey       = "userRole"
)

// Authenticator resolves a bearer token to the calling user.
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (domain.RequestContext, error)
}

// Auth requires a valid "Authorization: Bearer <token>" header and stores the
// caller's RequestContext on the gin context.
func Auth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		rc, err := a.Authenticate(c.Request.Context(), raw)
		if err != nil {
			if domain.IsUnauthorized(err) {
				abortUnauthorized(c, err.Error())
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      "failed to authenticate",
				"code":       "internal_error",
				"message":    "failed to authenticate",
				"request_id": GetRequestID(c),
			})
			return
		}
		SetRequestContext(c, rc)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"message":    "Unauthorized",
		"request_id": GetRequestID(c),
	})
}

// SetRequestContext stores the caller; RequireRoles reads the role it sets.
func SetRequestContext(c *gin.Context, rc domain.RequestContext) {
	c.Set(requestContextKey, rc)
	c.Set(userRoleKey, rc.Role)
}

func GetRequestContext(c *gin.Context) (domain.RequestContext, bool) {
	if c == nil {
		return domain.RequestContext{}, false
	}
	v, ok := c.Get(requestContextKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	rc, ok := v.(domain.RequestContext)
	return rc, ok
}
