package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"jobboard-platform/internal/config"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(config.AuthConfig{
		JWTSecret:       "secret",
		JWTIssuer:       "jobboard",
		JWTAudience:     "jobboard-clients",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	return c
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	c := testCodec(t)

	set := ClaimSet{Username: "alice", Roles: []Role{RoleAdmin}}
	tok, err := c.Issue(set, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := c.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Username != "alice" || len(got.Roles) != 1 || got.Roles[0] != RoleAdmin {
		t.Fatalf("unexpected claims: %+v", got)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	c := testCodec(t)

	issued := time.Unix(1700000000, 0).UTC()
	c.clock = func() time.Time { return issued }

	tok, err := c.Issue(ClaimSet{Username: "bob", Roles: []Role{RoleStandard}}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c.clock = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := c.Verify(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	c := testCodec(t)

	other, err := NewCodec(config.AuthConfig{
		JWTSecret:       "not-the-secret",
		JWTIssuer:       "jobboard",
		JWTAudience:     "jobboard-clients",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("codec: %v", err)
	}

	tok, err := other.Issue(ClaimSet{Username: "mallory", Roles: []Role{RoleAdmin}}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := c.Verify(tok); !errors.Is(err, ErrTokenBadSignature) {
		t.Fatalf("expected ErrTokenBadSignature, got %v", err)
	}
}

func TestVerifyRejectsMutatedSignature(t *testing.T) {
	c := testCodec(t)

	tok, err := c.Issue(ClaimSet{Username: "alice", Roles: []Role{RoleStandard}}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected compact JWT, got %q", tok)
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}

	// Flip every single bit of the signature; no mutation may verify.
	for i := 0; i < len(sig); i++ {
		for bit := 0; bit < 8; bit++ {
			mutated := make([]byte, len(sig))
			copy(mutated, sig)
			mutated[i] ^= 1 << bit

			bad := parts[0] + "." + parts[1] + "." + base64.RawURLEncoding.EncodeToString(mutated)
			if _, err := c.Verify(bad); !errors.Is(err, ErrTokenBadSignature) {
				t.Fatalf("bit %d of byte %d: expected ErrTokenBadSignature, got %v", bit, i, err)
			}
		}
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	c := testCodec(t)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := c.Verify(tok); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", tok, err)
		}
	}
}

func TestVerifyRejectsEmptyClaims(t *testing.T) {
	c := testCodec(t)

	// A token signed with the right key but carrying no username or roles
	// violates the claim-set invariants and must read as malformed.
	tok, err := c.Issue(ClaimSet{}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := c.Verify(tok); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}

	tok, err = c.Issue(ClaimSet{Username: "alice", Roles: []Role{Role(42)}}, time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := c.Verify(tok); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed for undefined role, got %v", err)
	}
}

func TestRolesFor(t *testing.T) {
	admin := RolesFor(true)
	if len(admin) != 1 || admin[0] != RoleAdmin {
		t.Fatalf("unexpected admin roles: %v", admin)
	}
	standard := RolesFor(false)
	if len(standard) != 1 || standard[0] != RoleStandard {
		t.Fatalf("unexpected standard roles: %v", standard)
	}

	if !(ClaimSet{Username: "a", Roles: admin}).IsAdmin() {
		t.Fatalf("admin claim set should report IsAdmin")
	}
	if (ClaimSet{Username: "a", Roles: standard}).IsAdmin() {
		t.Fatalf("standard claim set should not report IsAdmin")
	}
}
