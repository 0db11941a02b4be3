package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/meatmarket/internal/domain/errors"
	"github.com/polkiloo/meatmarket/internal/domain/model"
	pkgAuth "github.com/polkiloo/meatmarket/internal/pkg/auth"
)

const (
	// UserContextKey is a gin context key for the authenticated user.
	UserContextKey = "user"
	authCookieName = "meatmarket_token"
)

// TokenResolver turns a bearer token into the user who owns the session.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*model.User, error)
}

// AuthRequired ensures the request carries a live session before accessing
// the handler.
func AuthRequired(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c)
			return
		}

		user, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, pkgAuth.ErrInvalidToken),
				errors.Is(err, domainErrors.ErrSessionExpired),
				errors.Is(err, domainErrors.ErrNotFound):
				abortUnauthorized(c)
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   "internal error",
				})
			}
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// RequireRole rejects authenticated users whose role does not match.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c)
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"error":   "forbidden",
		})
	}
}

// CurrentUser extracts the authenticated user from the context.
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(UserContextKey)
	if !ok {
		return nil
	}
	user, _ := val.(*model.User)
	return user
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   "unauthorized",
	})
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

// SetAuthCookie writes the session token cookie to the response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}

// ExtractToken exposes token extraction for logout handling.
func ExtractToken(c *gin.Context) string {
	return extractToken(c)
}
