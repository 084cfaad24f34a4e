package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no active tenant matches an
	// identifier. Inactive tenants collapse into the same error so callers
	// cannot distinguish "never existed" from "currently suspended".
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrInvalidIdentifier is returned when the identifier is empty or
	// malformed.
	ErrInvalidIdentifier = errors.New("invalid tenant identifier")

	// ErrInvalidMode is returned when a stored mode value is neither
	// SHARED nor DEDICATED.
	ErrInvalidMode = errors.New("invalid tenant mode")

	// ErrInvalidDescriptor is returned by Validate when a descriptor
	// violates the mode-governed shape invariant.
	ErrInvalidDescriptor = errors.New("invalid tenant descriptor")

	// ErrTenantAlreadyBound is returned when Set is called on an already
	// bound scope. This is a wiring bug in the request pipeline, not a
	// runtime condition.
	ErrTenantAlreadyBound = errors.New("tenant already bound to request scope")

	// ErrTenantNotBound is returned when reading an empty scope.
	ErrTenantNotBound = errors.New("no tenant bound to request scope")

	// ErrNilTenant is returned when binding a nil descriptor.
	ErrNilTenant = errors.New("nil tenant descriptor")
)
