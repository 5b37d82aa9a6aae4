package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"hbsmoke/internal/cli"
	"hbsmoke/internal/cli/commands"
	"hbsmoke/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "hbsmoke [base-url]",
		Short:   "HandballStats frontend smoke tester",
		Long:    `Probe a running HandballStats frontend (default http://localhost:5173) and report whether it is ready for browser automation testing. Exits 1 when any check fails.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, commands.ErrChecksFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
