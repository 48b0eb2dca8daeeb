package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bikerental/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuth map[string]domain.RequestContext

func (f fakeAuth) Authenticate(ctx context.Context, raw string) (domain.RequestContext, error) {
	rc, ok := f[raw]
	if !ok {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token"}
	}
	return rc, nil
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := fakeAuth{
		"user-token":    {UserID: 1, Username: "u", Role: domain.RoleUser},
		"manager-token": {UserID: 2, Username: "m", Role: domain.RoleManager},
	}
	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", Auth(auth), func(c *gin.Context) {
		rc, _ := GetRequestContext(c)
		c.JSON(http.StatusOK, rc)
	})
	r.GET("/admin", Auth(auth), RequireRoles(domain.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := setupRouter()

	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "/me", "bogus").Code)

	w := do(r, "/me", "user-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":1`)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequireRoles(t *testing.T) {
	r := setupRouter()

	assert.Equal(t, http.StatusForbidden, do(r, "/admin", "user-token").Code)
	assert.Equal(t, http.StatusNoContent, do(r, "/admin", "manager-token").Code)
}

func TestRequestIDKeepsClientValue(t *testing.T) {
	r := setupRouter()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}
