package tenantdb

import "log/slog"

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger sets the logger for pool lifecycle events.
// Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithVerify controls whether a freshly built pool is pinged before being
// handed out. Verification is on by default; disabling it defers the first
// connection attempt to first query.
func WithVerify(verify bool) Option {
	return func(m *Manager) {
		m.verify = verify
	}
}
