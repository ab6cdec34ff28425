package auth

import (
	"slices"
	"strings"
)

// Scope names a permission granted by a bearer token.
type Scope string

// Scopes understood by the training summary API.
const (
	ScopeTrainingsWrite Scope = "trainings:write"
	ScopeTrainingsRead  Scope = "trainings:read"
)

// ScopeSet is the set of scopes granted to a caller.
type ScopeSet map[Scope]struct{}

// NewScopeSet builds a ScopeSet, dropping empty scopes.
func NewScopeSet(scopes ...Scope) ScopeSet {
	set := make(ScopeSet, len(scopes))
	for _, scope := range scopes {
		if scope != "" {
			set[scope] = struct{}{}
		}
	}
	return set
}

// Has reports whether scope is granted.
func (s ScopeSet) Has(scope Scope) bool {
	_, ok := s[scope]
	return ok
}

// HasAny reports whether at least one of scopes is granted.
func (s ScopeSet) HasAny(scopes ...Scope) bool {
	return slices.ContainsFunc(scopes, s.Has)
}

// String renders the set the way tokens carry it: sorted and space separated.
func (s ScopeSet) String() string {
	names := make([]string, 0, len(s))
	for scope := range s {
		names = append(names, string(scope))
	}
	slices.Sort(names)
	return strings.Join(names, " ")
}

// parseScopes reads the "scopes" claim, which issuers send either as a JSON
// array or as a single space-separated string.
func parseScopes(value any) ScopeSet {
	set := make(ScopeSet)
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if str, ok := item.(string); ok && str != "" {
				set[Scope(str)] = struct{}{}
			}
		}
	case string:
		for _, str := range strings.Fields(v) {
			set[Scope(str)] = struct{}{}
		}
	}
	return set
}
