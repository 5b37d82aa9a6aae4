package commands

import (
	"context"
	"errors"
	"io"
	"os"

	"hbsmoke/internal/cli"
	"hbsmoke/internal/config"
	"hbsmoke/internal/discovery"
	"hbsmoke/internal/storage"
	"hbsmoke/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrChecksFailed is returned when at least one check failed. main maps it to
// exit code 1 without printing it.
var ErrChecksFailed = errors.New("one or more checks failed")

// HistoryOpener connects to the run history store
type HistoryOpener func(ctx context.Context, dsn string) (storage.History, error)

func openMySQLHistory(ctx context.Context, dsn string) (storage.History, error) {
	return storage.OpenMySQLHistory(ctx, dsn)
}

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	List    *ListCommand
	Report  *ReportCommand
	History *HistoryCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	return NewCommandsWithOutput(cfg, os.Stdout, openMySQLHistory)
}

// NewCommandsWithOutput creates all commands printing to w and using openHistory
// for the history store
func NewCommandsWithOutput(cfg *config.Config, w io.Writer, openHistory HistoryOpener) *Commands {
	filter := discovery.NewFilter()
	formatter := ui.NewFormatterWithWriter(w)
	jsonStorage := storage.NewJSONStorage(cfg)
	viewer := ui.NewReportViewer()

	return &Commands{
		Run:     NewRunCommand(cfg, filter, formatter, jsonStorage, openHistory),
		List:    NewListCommand(cfg, filter, formatter),
		Report:  NewReportCommand(cfg, jsonStorage, formatter, viewer),
		History: NewHistoryCommand(cfg, formatter, openHistory),
	}
}

// Register registers all commands with cobra. The root command itself runs the suite.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Config file (default is ./.hbsmoke.yaml)")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", "", "Log format (text, json)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(viper.New(), flags.ConfigFile)
		if err != nil {
			return err
		}
		*cfg = *loaded
		cfg.Flags = flags.ToConfigFlags()
		return nil
	}

	rootCmd.Args = cobra.MaximumNArgs(1)
	rootCmd.RunE = c.Run.Execute
	addRunFlags(rootCmd.Flags(), flags)

	// Run command
	runCmd := &cobra.Command{
		Use:   "run [base-url]",
		Short: "Run the frontend smoke checks",
		Long:  "Probe the frontend at base-url (default http://localhost:5173) and exit 1 if any check fails",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.Run.Execute,
	}
	addRunFlags(runCmd.Flags(), flags)
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered checks",
		Long:  "List the checks a run would execute, in order, without contacting the frontend",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.Only, "only", "f", "", "Filter checks by name pattern (supports wildcards, e.g. '*Assets' or '*HTML*')")
	listCmd.Flags().StringVarP(&flags.BaseURL, "base-url", "u", "", "Base URL shown in the check descriptions")
	rootCmd.AddCommand(listCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "View the last saved run",
		Long:  "Display the report saved by the last run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE:  c.Report.Execute,
	}
	reportCmd.Flags().BoolVar(&flags.Plain, "plain", false, "Print the report instead of opening the viewer")
	rootCmd.AddCommand(reportCmd)

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		Long:  "List the most recent runs recorded with --history in the MySQL history store",
		Args:  cobra.NoArgs,
		RunE:  c.History.Execute,
	}
	historyCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 0, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func addRunFlags(fs *pflag.FlagSet, flags *cli.Flags) {
	fs.StringVarP(&flags.BaseURL, "base-url", "u", "", "Base URL of the frontend (default http://localhost:5173)")
	fs.DurationVar(&flags.Timeout, "timeout", 0, "Per-request timeout (default 5s)")
	fs.StringVarP(&flags.Only, "only", "f", "", "Filter checks by name pattern (supports wildcards, e.g. '*Assets' or '*HTML*')")
	fs.BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first failed check")
	fs.BoolVar(&flags.Progress, "progress", false, "Show a progress bar on stderr")
	fs.BoolVar(&flags.NoSave, "no-save", false, "Do not write the JSON report")
	fs.BoolVar(&flags.History, "history", false, "Record the run in the MySQL history store")
}
