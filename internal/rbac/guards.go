package rbac

import (
	"jobboard-platform/internal/auth"
	"jobboard-platform/internal/httpapi"

	"github.com/gin-gonic/gin"
)

// Guards are pure decisions over the ClaimSet the authenticator attached.
// They assume auth.Authenticate already ran; a request that never carried
// a usable token simply has no claims and fails whichever guard it meets.
// Chain order is always: authenticate, zero or one guard, handler.

// RequireLoggedIn rejects requests with no attached claims.
func RequireLoggedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.ClaimsFrom(c.Request.Context()); !ok {
			httpapi.AbortWithAuthError(c, auth.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests unless the claims carry the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.ClaimsFrom(c.Request.Context())
		if !ok || !claims.IsAdmin() {
			httpapi.AbortWithAuthError(c, auth.ErrUnauthorized)
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin rejects requests unless the claims carry the admin
// role or the claimed username exactly equals the route parameter named
// by param.
func RequireSelfOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.ClaimsFrom(c.Request.Context())
		if !ok {
			httpapi.AbortWithAuthError(c, auth.ErrUnauthorized)
			return
		}
		if claims.IsAdmin() || claims.Username == c.Param(param) {
			c.Next()
			return
		}
		httpapi.AbortWithAuthError(c, auth.ErrUnauthorized)
	}
}
