package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/medisync/claims-api/internal/model"
	"github.com/medisync/claims-api/pkg/auth"
)

// Context keys set by Authenticate.
const (
	ContextSubjectID = "subjectID"
	ContextRole      = "role"
)

type AuthMiddleware struct {
	jwtSvc auth.JWTService
}

func NewAuthMiddleware(jwtSvc auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

// Authenticate verifies the bearer token and sets the subject account
// id and role in the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.claimsFromHeader(c)
		if !ok {
			return
		}
		c.Set(ContextSubjectID, claims.Subject)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// AuthenticateOptional sets token context when a valid bearer token is
// present and otherwise lets the request through untouched; handlers
// that accept a query-parameter identity fall back on it.
func (m *AuthMiddleware) AuthenticateOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := m.jwtSvc.ValidateToken(parts[1]); err == nil {
					c.Set(ContextSubjectID, claims.Subject)
					c.Set(ContextRole, claims.Role)
				}
			}
		}
		c.Next()
	}
}

// RequireRole rejects callers whose token role differs from role.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetString(ContextRole)
		if got != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": fmt.Sprintf("Access denied. User role is %s, expected %s", got, role),
			})
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) claimsFromHeader(c *gin.Context) (*auth.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Missing authorization header",
		})
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid authorization format",
		})
		return nil, false
	}

	claims, err := m.jwtSvc.ValidateToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid or expired token",
		})
		return nil, false
	}
	return claims, true
}
