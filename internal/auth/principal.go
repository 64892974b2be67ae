package auth

import (
	"sort"
	"strings"
)

// Role is a normalized authority name carried by a Principal.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

const springRolePrefix = "ROLE_"

var knownRoles = map[Role]struct{}{
	RoleUser:  {},
	RoleAdmin: {},
}

// ParseRole maps a raw role string onto a known Role.
func ParseRole(raw string) (Role, bool) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	name = strings.TrimPrefix(name, springRolePrefix)
	if _, ok := knownRoles[Role(name)]; !ok {
		return "", false
	}
	return Role(name), true
}

// RoleSet is an unordered set of roles.
type RoleSet map[Role]struct{}

// NormalizeRoles keeps the recognised roles in raw and drops the rest.
func NormalizeRoles(raw []string) RoleSet {
	set := make(RoleSet, len(raw))
	for _, r := range raw {
		if role, ok := ParseRole(r); ok {
			set[role] = struct{}{}
		}
	}
	return set
}

// Has reports whether role is in the set.
func (s RoleSet) Has(role Role) bool {
	_, ok := s[role]
	return ok
}

// Strings returns the roles sorted by name.
func (s RoleSet) Strings() []string {
	out := make([]string, 0, len(s))
	for role := range s {
		out = append(out, string(role))
	}
	sort.Strings(out)
	return out
}

// Principal is the trusted identity of a single request.
type Principal struct {
	// Identifier is the account id the token was issued for.
	Identifier string
	Roles      RoleSet
}

// HasAnyRole reports whether the principal holds at least one of roles.
func (p Principal) HasAnyRole(roles ...Role) bool {
	for _, role := range roles {
		if p.Roles.Has(role) {
			return true
		}
	}
	return false
}
