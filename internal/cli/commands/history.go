package commands

import (
	"context"
	"fmt"

	"hbsmoke/internal/config"
	"hbsmoke/internal/ui"

	"github.com/spf13/cobra"
)

// HistoryCommand handles the history command
type HistoryCommand struct {
	config      *config.Config
	formatter   *ui.Formatter
	openHistory HistoryOpener
}

// NewHistoryCommand creates a new HistoryCommand
func NewHistoryCommand(cfg *config.Config, formatter *ui.Formatter, openHistory HistoryOpener) *HistoryCommand {
	return &HistoryCommand{
		config:      cfg,
		formatter:   formatter,
		openHistory: openHistory,
	}
}

// Execute runs the command
func (hc *HistoryCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	history, err := hc.openHistory(ctx, hc.config.GetHistoryDSN())
	if err != nil {
		return err
	}
	defer history.Close()

	runs, err := history.Recent(ctx, hc.config.GetHistoryLimit())
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	hc.formatter.PrintHistory(runs)
	return nil
}
