package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Role is a closed enumeration of authorization roles.
// The numeric wire values are a published client contract; do not renumber.
type Role int

const (
	RoleStandard Role = 0
	RoleAdmin    Role = 5150
)

// IsValid reports whether r is one of the defined roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStandard, RoleAdmin:
		return true
	default:
		return false
	}
}

// RolesFor derives the role set from the identity's admin flag.
// The result is never empty.
func RolesFor(isAdmin bool) []Role {
	if isAdmin {
		return []Role{RoleAdmin}
	}
	return []Role{RoleStandard}
}

// ClaimSet is the identity payload embedded in a signed token.
//
// Invariants:
// - Username is non-empty.
// - Roles is non-empty and contains only defined Role values.
// The codec enforces both on Verify; tokens violating them are malformed.
type ClaimSet struct {
	Username string `json:"username"`
	Roles    []Role `json:"roles"`
}

// IsAdmin reports whether the claim set carries the admin role.
func (c ClaimSet) IsAdmin() bool {
	for _, r := range c.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

func (c ClaimSet) valid() bool {
	if c.Username == "" || len(c.Roles) == 0 {
		return false
	}
	for _, r := range c.Roles {
		if !r.IsValid() {
			return false
		}
	}
	return true
}

// tokenClaims is the JWT claims shape: registered claims plus the ClaimSet.
type tokenClaims struct {
	jwt.RegisteredClaims

	Username string `json:"username"`
	Roles    []Role `json:"roles"`
}

func (t tokenClaims) claimSet() ClaimSet {
	return ClaimSet{Username: t.Username, Roles: t.Roles}
}
