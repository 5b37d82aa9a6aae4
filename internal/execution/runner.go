package execution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hbsmoke/internal/domain"
)

// ErrNoProbe is reported for a check registered without a function
var ErrNoProbe = errors.New("check has no probe function")

// Runner executes checks one after another and counts the outcomes
type Runner struct {
	reporter Reporter
	logger   *slog.Logger
	progress Progress
	failFast bool
	session  *domain.Session
}

// NewRunner creates a new Runner
func NewRunner(reporter Reporter, logger *slog.Logger) *Runner {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		reporter: reporter,
		logger:   logger,
		session:  domain.NewSession(),
	}
}

// SetProgress sets the progress bar for the runner
func (r *Runner) SetProgress(progress Progress) {
	r.progress = progress
}

// SetFailFast stops Execute after the first failed check
func (r *Runner) SetFailFast(failFast bool) {
	r.failFast = failFast
}

// Session returns the current session
func (r *Runner) Session() *domain.Session {
	return r.session
}

// RunCheck runs a single check and records it. An error or a panic inside the
// check counts as a failure and never escapes.
func (r *Runner) RunCheck(ctx context.Context, check domain.Check) bool {
	r.reporter.PrintCheckStart(check.Name)

	start := time.Now()
	passed, err := invoke(ctx, check.Fn)
	result := domain.CheckResult{
		Name:    check.Name,
		Info:    check.Info,
		Passed:  passed && err == nil,
		Elapsed: time.Since(start),
	}
	if err != nil {
		result.Error = err.Error()
	}

	r.session.Record(result)
	r.reporter.PrintCheckResult(result)

	r.logger.Debug("check finished",
		slog.String("check", check.Name),
		slog.Bool("passed", result.Passed),
		slog.Duration("elapsed", result.Elapsed),
	)
	if r.progress != nil {
		r.progress.Update(r.session.Passed(), r.session.Failed())
	}
	return result.Passed
}

// Execute runs checks in order against a fresh session
func (r *Runner) Execute(ctx context.Context, checks []domain.Check) (*domain.Session, time.Duration) {
	r.session = domain.NewSession()
	startTime := time.Now()

	for _, check := range checks {
		if !r.RunCheck(ctx, check) && r.failFast {
			r.logger.Info("stopping after first failure", slog.String("check", check.Name))
			break
		}
	}

	if r.progress != nil {
		r.progress.Finish()
	}
	return r.session, time.Since(startTime)
}

// Summarize prints the session summary and reports whether every attempted check passed
func (r *Runner) Summarize() bool {
	r.reporter.PrintSummary(r.session)
	return r.session.Success()
}

func invoke(ctx context.Context, fn domain.CheckFunc) (passed bool, err error) {
	if fn == nil {
		return false, ErrNoProbe
	}
	defer func() {
		if rec := recover(); rec != nil {
			passed = false
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn(ctx)
}

var _ Executor = (*Runner)(nil)
