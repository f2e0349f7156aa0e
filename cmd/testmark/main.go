package main

import (
	"fmt"
	"os"

	"testmark/internal/cli"
	"testmark/internal/cli/commands"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:          "testmark",
		Short:        "Test failures as problem markers",
		Long:         `Turn a test run's results into problem markers anchored at the failing source lines, and keep them in sync as files change.`,
		Version:      version,
		SilenceUsage: true,
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Register all commands
	commands.NewCommands().Register(rootCmd, &flags)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
