package main

import (
	"net/http"

	"jobboard-platform/internal/auth"
	"jobboard-platform/internal/httpapi"
	"jobboard-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// The authenticator middleware is installed engine-wide in main; the
// chain for every route is authenticate, zero or one guard, handler.
func registerRoutes(r *gin.Engine, h httpapi.Handlers) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// token lifecycle (public; refresh/logout authenticate via cookie)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/token", h.Login)
		authGroup.POST("/register", h.Register)
		authGroup.GET("/refresh", h.Refresh)
		authGroup.POST("/logout", h.Logout)
	}

	// protected API group; each route carries exactly the guard its
	// access rule needs
	v1 := r.Group("/v1")
	{
		v1.GET("/me", rbac.RequireLoggedIn(), func(c *gin.Context) {
			claims, _ := auth.ClaimsFrom(c.Request.Context())
			c.JSON(http.StatusOK, gin.H{"username": claims.Username, "roles": claims.Roles})
		})

		v1.GET("/users/:username", rbac.RequireSelfOrAdmin("username"), func(c *gin.Context) {
			// Domain user CRUD lives outside this service; this route
			// exists to gate it.
			c.JSON(http.StatusOK, gin.H{"username": c.Param("username")})
		})

		admin := v1.Group("/admin", rbac.RequireAdmin())
		{
			admin.GET("/ping", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"status": "ok"})
			})
		}
	}
}
