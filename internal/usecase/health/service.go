package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional collaborator is failing; search still
	// serves (without semantic ranking or AI answers).
	Degraded Status = "degraded"
	// Unhealthy indicates the content source is down; search cannot serve.
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

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Pinger checks one collaborator's connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProviderChecker verifies an AI provider's availability.
type ProviderChecker interface {
	HealthCheck(ctx context.Context) error
}

// Service coordinates health checks. The CMS is the only required
// collaborator; cache and embedding checks are optional.
type Service struct {
	cms       Pinger
	cache     Pinger
	embedding ProviderChecker
}

// New creates a Service. cache and embedding can be nil.
func New(cms Pinger, cache Pinger, embedding ProviderChecker) *Service {
	return &Service{cms: cms, cache: cache, embedding: embedding}
}

// Check runs health checks against all configured components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.cms.Ping(ctx); err != nil {
		checks["cms"] = CheckError
		status = Unhealthy
	} else {
		checks["cms"] = CheckOK
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["cache"] = CheckOK
		}
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
			if status == Healthy {
				status = Degraded
			}
		} else {
			checks["embedding"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
