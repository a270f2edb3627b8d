package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fideleatome/loyalty/internal/domain/model"
	pkgAuth "github.com/fideleatome/loyalty/internal/pkg/auth"
)

const (
	// UserIDContextKey is a gin context key for authenticated account identifier.
	UserIDContextKey = "userID"
	// RoleContextKey is a gin context key for the authenticated role.
	RoleContextKey = "role"

	authCookieName = "fideleatome_token"
)

// TokenParser validates bearer tokens and returns the account identity.
type TokenParser interface {
	ParseToken(token string) (int64, model.Role, error)
}

// AuthRequired ensures the caller is authenticated, and when role is set,
// that the account carries that role.
func AuthRequired(parser TokenParser, role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userID, gotRole, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		if role != "" && gotRole != role {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Set(UserIDContextKey, userID)
		c.Set(RoleContextKey, gotRole)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
