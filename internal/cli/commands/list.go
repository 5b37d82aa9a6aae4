package commands

import (
	"hbsmoke/internal/config"
	"hbsmoke/internal/discovery"
	"hbsmoke/internal/logging"
	"hbsmoke/internal/probe"
	"hbsmoke/internal/ui"

	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	prober := probe.NewProber(lc.config, probe.NewClient(lc.config.GetTimeout(), logging.Discard()))
	checks := lc.filter.FilterByName(prober.Checks(), lc.config.Flags.Only)

	lc.formatter.PrintCheckList(checks)
	return nil
}
