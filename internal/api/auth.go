package api

import (
	"net/http"
	"strings"
)

// Principal is the authenticated caller, trimmed from the ancestor's
// driver-centric shape (no DriverID — this service has no drivers) to
// tenant/role only.
type Principal struct {
	Tenant string
	Role   string // admin, operator
}

// IsAdmin reports whether the principal has the admin role.
func (p Principal) IsAdmin() bool { return p.Role == "admin" }

// getPrincipal extracts tenant and role from a bearer JWT, falling
// back to header-based dev auth the way the ancestor's getPrincipal
// did (grounded on internal/api/auth.go, internal/auth.Verifier).
func (s *Server) getPrincipal(r *http.Request) Principal {
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") && s.Auth != nil {
		tok := strings.TrimSpace(authz[len("Bearer "):])
		if pr, err := s.Auth.Verify(tok); err == nil {
			return Principal{Tenant: pr.Tenant, Role: pr.Role}
		}
	}
	tenant := tenantOf(r)
	role := r.Header.Get("X-Role")
	if role == "" {
		role = "admin"
	}
	return Principal{Tenant: tenant, Role: role}
}
