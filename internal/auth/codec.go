package auth

import (
	"errors"
	"time"

	"jobboard-platform/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Codec signs and verifies the compact tokens that carry a ClaimSet.
// It is a pure function of its inputs and the signing key; the key is
// loaded once at startup and never mutated.
type Codec struct {
	secret   []byte
	issuer   string
	audience string

	accessTTL  time.Duration
	refreshTTL time.Duration

	// clock is injectable for deterministic expiry tests.
	clock func() time.Time
}

func NewCodec(cfg config.AuthConfig) (*Codec, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return &Codec{
		secret:     []byte(cfg.JWTSecret),
		issuer:     cfg.JWTIssuer,
		audience:   cfg.JWTAudience,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		clock:      time.Now,
	}, nil
}

func (c *Codec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// Issue signs set into a compact token expiring after ttl.
// It never fails for a well-formed claim set.
func (c *Codec) Issue(set ClaimSet, ttl time.Duration) (string, error) {
	now := c.clock()

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  audienceOrNil(c.audience),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Username: set.Username,
		Roles:    set.Roles,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// IssueAccess issues a short-lived access token for set.
func (c *Codec) IssueAccess(set ClaimSet) (string, error) {
	return c.Issue(set, c.accessTTL)
}

// IssueRefresh issues a long-lived refresh token for set.
func (c *Codec) IssueRefresh(set ClaimSet) (string, error) {
	return c.Issue(set, c.refreshTTL)
}

// Verify decodes and validates token, returning its ClaimSet.
// Failures collapse to exactly one of ErrTokenMalformed,
// ErrTokenBadSignature, ErrTokenExpired.
func (c *Codec) Verify(token string) (ClaimSet, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock),
	}
	if c.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(c.issuer))
	}
	if c.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(c.audience))
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, parserOpts...)
	if err != nil {
		return ClaimSet{}, classifyTokenError(err)
	}

	set := claims.claimSet()
	if !set.valid() {
		return ClaimSet{}, ErrTokenMalformed
	}
	return set, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenBadSignature
	default:
		return ErrTokenMalformed
	}
}

func audienceOrNil(aud string) jwt.ClaimStrings {
	if aud == "" {
		return nil
	}
	return jwt.ClaimStrings{aud}
}
