package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"hbsmoke/internal/config"
	"hbsmoke/internal/discovery"
	"hbsmoke/internal/domain"
	"hbsmoke/internal/execution"
	"hbsmoke/internal/logging"
	"hbsmoke/internal/probe"
	"hbsmoke/internal/storage"
	"hbsmoke/internal/ui"

	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config      *config.Config
	filter      *discovery.Filter
	formatter   *ui.Formatter
	storage     storage.Storage
	openHistory HistoryOpener
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	st storage.Storage,
	openHistory HistoryOpener,
) *RunCommand {
	return &RunCommand{
		config:      cfg,
		filter:      filter,
		formatter:   formatter,
		storage:     st,
		openHistory: openHistory,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		rc.config.Flags.BaseURL = args[0]
	}
	baseURL := rc.config.GetBaseURL()
	if u, err := url.ParseRequestURI(baseURL); err != nil || u.Host == "" {
		return fmt.Errorf("invalid base URL %q", baseURL)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.WithComponent(logging.NewLogger(rc.config.GetLogging()), "run")

	prober := probe.NewProber(rc.config, probe.NewClient(rc.config.GetTimeout(), logger))
	checks := rc.filter.FilterByName(prober.Checks(), rc.config.Flags.Only)

	rc.formatter.PrintHeader(baseURL)
	if len(checks) == 0 {
		logger.Warn("no checks match filter", slog.String("only", rc.config.Flags.Only))
	}

	runner := execution.NewRunner(rc.formatter, logger)
	runner.SetFailFast(rc.config.Flags.FailFast)
	if rc.config.Flags.Progress && len(checks) > 0 {
		runner.SetProgress(ui.NewProgressBar(len(checks)))
	}

	session, duration := runner.Execute(ctx, checks)
	success := runner.Summarize()
	rc.formatter.PrintReadiness(success, baseURL, rc.config.ReadyAreas)

	report := domain.NewSessionReport(baseURL, session, duration, time.Now())
	if !rc.config.Flags.NoSave {
		if err := rc.storage.Save(report); err != nil {
			logger.Warn("failed to save report", slog.String("error", err.Error()))
		}
	}
	if rc.config.Flags.History {
		rc.recordHistory(ctx, report, logger)
	}

	if !success {
		return ErrChecksFailed
	}
	return nil
}

// recordHistory stores the run; failures are logged and never change the outcome
func (rc *RunCommand) recordHistory(ctx context.Context, report *domain.SessionReport, logger *slog.Logger) {
	history, err := rc.openHistory(ctx, rc.config.GetHistoryDSN())
	if err != nil {
		logger.Warn("history store unavailable", slog.String("error", err.Error()))
		return
	}
	defer history.Close()

	id, err := history.Record(ctx, report)
	if err != nil {
		logger.Warn("failed to record run", slog.String("error", err.Error()))
		return
	}
	logger.Info("run recorded", slog.Int64("run_id", id))
}
