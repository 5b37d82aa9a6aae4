package execution

import (
	"context"
	"time"

	"hbsmoke/internal/domain"
)

// Executor runs checks and returns the resulting session
type Executor interface {
	Execute(ctx context.Context, checks []domain.Check) (*domain.Session, time.Duration)
}

// Reporter receives the human-readable progress of a run
type Reporter interface {
	PrintCheckStart(name string)
	PrintCheckResult(result domain.CheckResult)
	PrintSummary(s *domain.Session)
}

// Progress tracks how many checks have finished
type Progress interface {
	Update(passed, failed int)
	Finish()
}

type nopReporter struct{}

func (nopReporter) PrintCheckStart(string)              {}
func (nopReporter) PrintCheckResult(domain.CheckResult) {}
func (nopReporter) PrintSummary(*domain.Session)        {}
