package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the cluster itself is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names used as check keys.
const (
	ComponentCluster  = "weaviate"
	ComponentSessions = "sessions"
)

// Report aggregates health check results.
type Report struct {
	Status  Status
	Checks  map[string]CheckResult
	Version string
}

// Service coordinates health checks.
type Service struct {
	cluster  ClusterChecker
	sessions SessionPinger
}

// New creates a Service. sessions can be nil.
func New(cluster ClusterChecker, sessions SessionPinger) *Service {
	return &Service{cluster: cluster, sessions: sessions}
}

// Check runs health checks against all components. A cluster failure makes
// the report unhealthy; a session store failure only degrades it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	var version string

	if err := s.cluster.Ready(ctx); err != nil {
		checks[ComponentCluster] = CheckError
	} else {
		checks[ComponentCluster] = CheckOK
		if v, err := s.cluster.Version(ctx); err == nil {
			version = v
		}
	}

	if s.sessions != nil {
		if err := s.sessions.Ping(ctx); err != nil {
			checks[ComponentSessions] = CheckError
		} else {
			checks[ComponentSessions] = CheckOK
		}
	}

	status := Healthy
	switch {
	case checks[ComponentCluster] == CheckError:
		status = Unhealthy
	case checks[ComponentSessions] == CheckError:
		status = Degraded
	}

	return Report{Status: status, Checks: checks, Version: version}
}
