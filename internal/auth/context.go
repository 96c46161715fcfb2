package auth

import (
	"context"
)

type ctxKey struct{}

// WithClaims attaches a resolved ClaimSet to the request context.
// The authenticator calls this at most once per request; nothing
// downstream mutates the attached value.
func WithClaims(ctx context.Context, set ClaimSet) context.Context {
	return context.WithValue(ctx, ctxKey{}, set)
}

// ClaimsFrom returns the ClaimSet attached to ctx, if any.
// ok is false for unauthenticated requests.
func ClaimsFrom(ctx context.Context) (ClaimSet, bool) {
	v := ctx.Value(ctxKey{})
	if set, ok := v.(ClaimSet); ok {
		return set, true
	}
	return ClaimSet{}, false
}

// clientIPKey carries the resolved client IP through internal layers, so
// audit records can name the caller without the service knowing about HTTP.
type clientIPKey struct{}

func WithClientIP(ctx context.Context, ip string) context.Context {
	if ip == "" {
		return ctx
	}
	return context.WithValue(ctx, clientIPKey{}, ip)
}

func ClientIPFrom(ctx context.Context) string {
	v := ctx.Value(clientIPKey{})
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
