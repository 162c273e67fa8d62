package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
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

// Service coordinates health checks.
type Service struct {
	source     SourcePinger
	sourceName string
}

// New creates a Service. sourceName keys the check in the report ("file", "redis").
func New(source SourcePinger, sourceName string) *Service {
	if sourceName == "" {
		sourceName = "source"
	}
	return &Service{source: source, sourceName: sourceName}
}

// Check pings the bookmark source.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{s.sourceName: CheckOK}
	status := Healthy

	if err := s.source.Ping(ctx); err != nil {
		checks[s.sourceName] = CheckError
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
