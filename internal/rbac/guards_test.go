package rbac

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobboard-platform/internal/auth"

	"github.com/gin-gonic/gin"
)

// claimsInjector plants a ClaimSet the way the authenticator would.
func claimsInjector(set auth.ClaimSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := auth.WithClaims(c.Request.Context(), set)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func get(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func ok(c *gin.Context) { c.Status(http.StatusOK) }

func TestRequireLoggedIn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/anon", RequireLoggedIn(), ok)
	r.GET("/user", claimsInjector(auth.ClaimSet{Username: "bob", Roles: []auth.Role{auth.RoleStandard}}), RequireLoggedIn(), ok)

	if w := get(t, r, "/anon"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w := get(t, r, "/user"); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/anon", RequireAdmin(), ok)
	r.GET("/standard", claimsInjector(auth.ClaimSet{Username: "bob", Roles: []auth.Role{auth.RoleStandard}}), RequireAdmin(), ok)
	r.GET("/admin", claimsInjector(auth.ClaimSet{Username: "alice", Roles: []auth.Role{auth.RoleAdmin}}), RequireAdmin(), ok)

	if w := get(t, r, "/anon"); w.Code != http.StatusUnauthorized {
		t.Fatalf("anon: expected 401, got %d", w.Code)
	}
	if w := get(t, r, "/standard"); w.Code != http.StatusUnauthorized {
		t.Fatalf("standard: expected 401, got %d", w.Code)
	}
	if w := get(t, r, "/admin"); w.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", w.Code)
	}
}

func TestRequireSelfOrAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		claims *auth.ClaimSet
		want   int
	}{
		{"self standard", &auth.ClaimSet{Username: "alice", Roles: []auth.Role{auth.RoleStandard}}, http.StatusOK},
		{"other admin", &auth.ClaimSet{Username: "bob", Roles: []auth.Role{auth.RoleAdmin}}, http.StatusOK},
		{"other standard", &auth.ClaimSet{Username: "bob", Roles: []auth.Role{auth.RoleStandard}}, http.StatusUnauthorized},
		{"anonymous", nil, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			handlers := []gin.HandlerFunc{}
			if tc.claims != nil {
				handlers = append(handlers, claimsInjector(*tc.claims))
			}
			handlers = append(handlers, RequireSelfOrAdmin("username"), ok)
			r.GET("/users/:username", handlers...)

			if w := get(t, r, "/users/alice"); w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

// Guard rejections carry the uniform error payload.
func TestGuardRejectionShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", RequireLoggedIn(), ok)

	w := get(t, r, "/x")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"error"`) || !strings.Contains(body, `"status":401`) {
		t.Fatalf("unexpected rejection body: %s", body)
	}
}
