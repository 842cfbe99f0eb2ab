package health

import "context"

// ClusterChecker checks database cluster readiness and reports its version.
type ClusterChecker interface {
	Ready(ctx context.Context) error
	Version(ctx context.Context) (string, error)
}

// SessionPinger checks session store availability.
type SessionPinger interface {
	Ping(ctx context.Context) error
}
