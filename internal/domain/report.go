package domain

import "time"

// SessionReportMeta contains metadata about a smoke run
type SessionReportMeta struct {
	BaseURL         string  `json:"base_url"`
	Attempted       int     `json:"attempted"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	SuccessRate     float64 `json:"success_rate"`
	Success         bool    `json:"success"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// SessionReport is the complete output structure for a smoke run
type SessionReport struct {
	Meta   SessionReportMeta `json:"meta"`
	Checks []CheckResult     `json:"checks"`
}

// NewSessionReport snapshots a session into a report
func NewSessionReport(baseURL string, s *Session, duration time.Duration, at time.Time) *SessionReport {
	rate, _ := s.SuccessRate()
	return &SessionReport{
		Meta: SessionReportMeta{
			BaseURL:         baseURL,
			Attempted:       s.Attempted(),
			Passed:          s.Passed(),
			Failed:          s.Failed(),
			SuccessRate:     rate,
			Success:         s.Success(),
			Duration:        duration.String(),
			DurationSeconds: duration.Seconds(),
			Timestamp:       at.Format(time.RFC3339),
		},
		Checks: s.Results(),
	}
}

// FailedChecks returns only the checks that did not pass
func (r *SessionReport) FailedChecks() []CheckResult {
	var failed []CheckResult
	for _, c := range r.Checks {
		if !c.Passed {
			failed = append(failed, c)
		}
	}
	return failed
}

// HistoryRun is one recorded run in the history store
type HistoryRun struct {
	ID        int64
	BaseURL   string
	Attempted int
	Passed    int
	Success   bool
	Duration  time.Duration
	StartedAt time.Time
}
