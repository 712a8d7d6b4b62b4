// Package middleware implements the authenticated-request pipeline:
// the authorization guard, the audit interceptor and the global error
// handler.
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"template_backend/internal/feature/users/domain/entity"
	"template_backend/internal/platform/jwt"
	"template_backend/internal/shared/apperr"
)

// contextUserKey is the gin context key the guard stores the current
// user under.
const contextUserKey = "currentUser"

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*jwtauth.Claims, error)
}

// UserSource loads the current user record by UUID.
type UserSource interface {
	FindByUUID(ctx context.Context, uuid string) (*entity.User, error)
}

// AuthRequired returns the authorization guard. It verifies the bearer
// token, then re-fetches the CURRENT user record by the token's subject
// instead of trusting the embedded claims. A user deleted after token
// issuance is therefore rejected immediately, even while the signature
// is still valid.
func AuthRequired(tokens TokenVerifier, users UserSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			abort(c, apperr.Unauthorized("Unauthorized"))
			return
		}

		claims, err := tokens.Verify(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			abort(c, apperr.Unauthorized("Unauthorized"))
			return
		}

		user, err := users.FindByUUID(c.Request.Context(), claims.Subject)
		if err != nil {
			abort(c, apperr.Unauthorized("User not found! Use a valid token or login again."))
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user record the guard attached to the request.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
