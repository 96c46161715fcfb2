package auth

import (
	"strings"

	"jobboard-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// Authenticate resolves the bearer token on each request and attaches its
// ClaimSet to the request context.
//
// It never rejects a request. A missing header, a wrong scheme, or any
// verification failure all mean the same thing downstream: no claims
// attached. Guards in internal/rbac decide what that costs; this keeps
// public and protected endpoints on one pipeline. Do not turn failures
// here into early aborts.
func Authenticate(codec *Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
		if raw == "" || !strings.HasPrefix(raw, bearerPrefix) {
			c.Next()
			return
		}
		tok := strings.TrimPrefix(raw, bearerPrefix)

		set, err := codec.Verify(tok)
		if err != nil {
			// Forged, expired, garbled: all equal to "not logged in".
			logger.FromGin(c).Debug("bearer token rejected", "err", err)
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), set))
		c.Next()
	}
}
