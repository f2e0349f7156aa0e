package commands

import (
	"os"

	"testmark/internal/cli"
	"testmark/internal/config"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Check    *CheckCommand
	Resolve  *ResolveCommand
	List     *ListCommand
	Record   *RecordCommand
	Problems *ProblemsCommand

	deps *Dependencies
}

// NewCommands creates all commands. They share one Dependencies value that is
// filled in once flags have been parsed.
func NewCommands() *Commands {
	deps := &Dependencies{}
	return &Commands{
		Check:    NewCheckCommand(deps),
		Resolve:  NewResolveCommand(deps),
		List:     NewListCommand(deps),
		Record:   NewRecordCommand(deps),
		Problems: NewProblemsCommand(deps),
		deps:     deps,
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "p", "", "Project root used to resolve test file paths")
	rootCmd.PersistentFlags().StringVarP(&flags.Results, "results", "r", "", "Path to the test results document (default storage/test-results.json)")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to a testmark.yaml config file")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*c.deps = *NewDependencies(cfg, os.Stdout)
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		c.deps.Close()
	}

	// Check command
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Show problem markers for the last test run",
		Long:  "Load the test results document and show one marker per failing assertion at its reported line",
		Args:  cobra.NoArgs,
		RunE:  c.Check.Execute,
	}
	checkCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Only show files matching a name pattern (supports wildcards, e.g. '*cart*')")
	checkCmd.Flags().BoolVar(&flags.JSON, "json", false, "Print markers as JSON")
	checkCmd.Flags().BoolVar(&flags.Strict, "strict", false, "Exit with an error when any marker exists")
	rootCmd.AddCommand(checkCmd)

	// Resolve command
	resolveCmd := &cobra.Command{
		Use:   "resolve [files...]",
		Short: "Resolve markers against the current file contents",
		Long:  "Run the precise pass for the given files (or every file with markers) so each marker spans the failing line",
		RunE:  c.Resolve.Execute,
	}
	resolveCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Only resolve files matching a name pattern")
	resolveCmd.Flags().BoolVar(&flags.JSON, "json", false, "Print markers as JSON")
	rootCmd.AddCommand(resolveCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered test files",
		Long:  "Scan the project for test files and show how many markers each one holds",
		Args:  cobra.NoArgs,
		RunE:  c.List.Execute,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter test files by name pattern")
	rootCmd.AddCommand(listCmd)

	// Record command
	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "Store a results document produced by a test reporter",
		Long:  "Read a results document from stdin (or --from), fill derived statuses and write it to the results path",
		Args:  cobra.NoArgs,
		RunE:  c.Record.Execute,
	}
	recordCmd.Flags().StringVar(&flags.From, "from", "", "Read the document from a file instead of stdin")
	rootCmd.AddCommand(recordCmd)

	// Problems command
	problemsCmd := &cobra.Command{
		Use:   "problems",
		Short: "Browse problem markers interactively",
		Long:  "Display markers per file; selecting a file resolves its markers against the current contents",
		Args:  cobra.NoArgs,
		RunE:  c.Problems.Execute,
	}
	rootCmd.AddCommand(problemsCmd)
}
