package tenantdb

import "errors"

var (
	// ErrMissingDatabaseConfig indicates a dedicated tenant has no usable
	// database coordinates (host, database name and username are required).
	ErrMissingDatabaseConfig = errors.New("tenant database configuration missing")

	// ErrConnectionFailed is the stable, tenant-safe connection error. The
	// underlying driver error is joined to it and must stay server-side.
	ErrConnectionFailed = errors.New("failed to connect to tenant database")

	// ErrSharedDSNNotConfigured indicates a shared-mode tenant was routed
	// while no shared cluster DSN was configured.
	ErrSharedDSNNotConfigured = errors.New("shared database DSN not configured")

	// ErrInvalidDSN indicates a DSN that the driver could not parse.
	ErrInvalidDSN = errors.New("invalid database DSN")

	// ErrManagerClosed is returned by operations on a closed manager.
	ErrManagerClosed = errors.New("connection manager is closed")
)
