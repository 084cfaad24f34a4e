package tenant

import (
	"sync"

	"github.com/google/uuid"
)

// Scope carries exactly one resolved tenant through the lifetime of a single
// unit of work (an HTTP request, a queue message). It is written once, read
// by any number of downstream collaborators, and cleared at the end of the
// unit of work.
//
// A Scope must be created fresh per unit of work and never shared between
// concurrent requests: a process-wide instance would leak one request's
// tenant into another's queries.
type Scope struct {
	mu    sync.Mutex
	t     *Tenant
	bound bool
}

// NewScope returns an empty scope for one unit of work.
func NewScope() *Scope {
	return &Scope{}
}

// Set binds the tenant to the scope. Binding twice within one lifetime is a
// wiring bug in the surrounding pipeline (two interceptors both establishing
// context) and fails with ErrTenantAlreadyBound.
func (s *Scope) Set(t *Tenant) error {
	if t == nil {
		return ErrNilTenant
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bound {
		return ErrTenantAlreadyBound
	}
	s.t = t
	s.bound = true
	return nil
}

// Get returns the bound tenant. Reading before Set fails with
// ErrTenantNotBound; an unbound scope never reads as an empty tenant.
func (s *Scope) Get() (*Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.bound {
		return nil, ErrTenantNotBound
	}
	return s.t, nil
}

// MustGet returns the bound tenant and panics when the scope is empty. Use
// only in code paths where an unbound scope is unreachable.
func (s *Scope) MustGet() *Tenant {
	t, err := s.Get()
	if err != nil {
		panic("tenant: " + err.Error())
	}
	return t
}

// ID reports the bound tenant's ID, or false when the scope is empty. It is
// the non-failing accessor for logging and cleanup paths that must not error.
func (s *Scope) ID() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.bound {
		return uuid.Nil, false
	}
	return s.t.ID, true
}

// Subdomain reports the bound tenant's subdomain, or false when the scope
// is empty.
func (s *Scope) Subdomain() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.bound {
		return "", false
	}
	return s.t.Subdomain, true
}

// Bound reports whether a tenant has been bound.
func (s *Scope) Bound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

// Clear empties the scope, ending its lifetime. It must run at the end of
// every unit of work, including error and panic paths, which is why
// Middleware defers it.
func (s *Scope) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = nil
	s.bound = false
}
