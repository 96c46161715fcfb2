package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func authTestRouter(t *testing.T, codec *Codec) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Authenticate(codec))
	r.GET("/x", func(c *gin.Context) {
		claims, ok := ClaimsFrom(c.Request.Context())
		if !ok {
			c.JSON(http.StatusOK, gin.H{"authenticated": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"authenticated": true, "username": claims.Username})
	})
	return r
}

func TestAuthenticate_NoHeaderProceedsWithoutClaims(t *testing.T) {
	r := authTestRouter(t, testCodec(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"authenticated":false}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAuthenticate_WrongSchemeProceedsWithoutClaims(t *testing.T) {
	r := authTestRouter(t, testCodec(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"authenticated":false}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

// A forged or expired token must be treated exactly like no token at all:
// the request proceeds, claims stay unset, and the guards decide later.
func TestAuthenticate_BadTokenSwallowedNotRejected(t *testing.T) {
	codec := testCodec(t)
	r := authTestRouter(t, codec)

	issued := time.Unix(1700000000, 0).UTC()
	codec.clock = func() time.Time { return issued }
	expired, err := codec.Issue(ClaimSet{Username: "bob", Roles: []Role{RoleStandard}}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	codec.clock = time.Now

	for _, tok := range []string{"garbage", expired} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("token %q: expected 200, got %d", tok, w.Code)
		}
		if body := w.Body.String(); body != `{"authenticated":false}` {
			t.Fatalf("token %q: unexpected body: %s", tok, body)
		}
	}
}

func TestAuthenticate_ValidTokenAttachesClaims(t *testing.T) {
	codec := testCodec(t)
	r := authTestRouter(t, codec)

	tok, err := codec.IssueAccess(ClaimSet{Username: "alice", Roles: []Role{RoleAdmin}})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"authenticated":true,"username":"alice"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}
