package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/careflow-api/internal/auth"
	"github.com/BruksfildServices01/careflow-api/internal/domain/user"
	"github.com/BruksfildServices01/careflow-api/internal/httperr"
	"github.com/BruksfildServices01/careflow-api/internal/models"
)

const (
	ContextUser   = "currentUser"
	ContextClaims = "tokenClaims"
)

type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*auth.Claims, error)
}

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthMiddleware resolves the bearer token to a stored user. The stored
// role wins over the role claim.
func AuthMiddleware(tokens TokenVerifier, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Not authenticated.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Not authenticated.")
			return
		}

		claims, err := tokens.Verify(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Could not validate credentials.")
			return
		}

		u, err := users.FindByEmail(c.Request.Context(), claims.Email())
		if errors.Is(err, user.ErrNotFound) {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Could not validate credentials.")
			return
		}
		if err != nil {
			c.Abort()
			httperr.FromError(c, err)
			return
		}

		c.Set(ContextUser, u)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil || !user.Role(u.Role).In(roles...) {
			httperr.Abort(c, http.StatusForbidden, "forbidden", "Insufficient permissions.")
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

func TokenClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	cl, _ := v.(*auth.Claims)
	return cl
}
