package domain

import (
	"context"
	"time"
)

// CheckFunc probes the system under test. A returned error counts as a failed check.
type CheckFunc func(ctx context.Context) (bool, error)

// Check is a single named boolean probe
type Check struct {
	Name string    // Shown on the progress line
	Info string    // One-line description of what is probed
	Fn   CheckFunc // The probe itself
}

// CheckResult represents the outcome of running one check
type CheckResult struct {
	Name    string        `json:"name"`
	Info    string        `json:"info,omitempty"`
	Passed  bool          `json:"passed"`
	Error   string        `json:"error,omitempty"` // Error text when the check errored or panicked
	Elapsed time.Duration `json:"elapsed_ns"`
}
