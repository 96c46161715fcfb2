package httpapi

import (
	"errors"
	"net/http"

	"jobboard-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

// Every rejection and unhandled failure leaving this API has one shape:
//
//	{"error": {"message": "...", "status": 400}}
//
// Guard rejections, validation failures, and the 404/500 fallbacks all
// funnel through here.

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// AbortWithError stops the request with the uniform error payload.
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, errorBody{Error: errorDetail{Message: message, Status: status}})
}

// AbortWithAuthError renders a caller-visible auth error. Anything that is
// not an *auth.Error is unclassified and becomes the 500 fallback.
func AbortWithAuthError(c *gin.Context, err error) {
	var ae *auth.Error
	if errors.As(err, &ae) {
		AbortWithError(c, ae.Status, ae.Message)
		return
	}
	AbortWithError(c, http.StatusInternalServerError, "internal server error")
}

// NoRoute is the fallback for unmatched routes.
func NoRoute(c *gin.Context) {
	AbortWithError(c, http.StatusNotFound, "not found")
}

// Recovery turns panics into the uniform 500 payload.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, _ any) {
		AbortWithError(c, http.StatusInternalServerError, "internal server error")
	})
}
