package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/pkg/auth"
)

func setupAuthRouter(t *testing.T, jwtSvc auth.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(jwtSvc)

	r := gin.New()
	r.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"subject": c.GetString(ContextSubjectID),
			"role":    c.GetString(ContextRole),
		})
	})
	r.GET("/insurance-only", m.Authenticate(), m.RequireRole(model.RoleInsurance), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	r.GET("/optional", m.AuthenticateOptional(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString(ContextSubjectID)})
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	r := setupAuthRouter(t, jwtSvc)

	token, err := jwtSvc.GenerateToken("user-123", "hospital")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-123")
	assert.Contains(t, w.Body.String(), "hospital")
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	r := setupAuthRouter(t, auth.NewJWTService("test-secret", time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Missing authorization header")
}

func TestAuthenticate_BadFormat(t *testing.T) {
	r := setupAuthRouter(t, auth.NewJWTService("test-secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "tokenwithoutscheme")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid authorization format")
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	r := setupAuthRouter(t, auth.NewJWTService("test-secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestRequireRole(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	r := setupAuthRouter(t, jwtSvc)

	token, err := jwtSvc.GenerateToken("user-123", "hospital")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/insurance-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied. User role is hospital, expected insurance")
}

func TestRequireRole_Allowed(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	r := setupAuthRouter(t, jwtSvc)

	token, err := jwtSvc.GenerateToken("user-123", "insurance")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/insurance-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateOptional(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	r := setupAuthRouter(t, jwtSvc)

	// no token still passes, with no subject set
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/optional", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subject":""`)

	// valid token sets the subject
	token, err := jwtSvc.GenerateToken("user-123", "hospital")
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Contains(t, w.Body.String(), "user-123")
}
