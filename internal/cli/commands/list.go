package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ListCommand handles the list command
type ListCommand struct {
	deps *Dependencies
}

// NewListCommand creates a new ListCommand
func NewListCommand(deps *Dependencies) *ListCommand {
	return &ListCommand{deps: deps}
}

// Execute scans the project for test files and prints each with its marker count
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	d := lc.deps
	files, err := d.Scanner.Scan(d.Config.GetProjectRoot())
	if err != nil {
		return err
	}

	files = d.Filter.FilterByName(files, d.Config.Flags.NameFilter)
	if len(files) == 0 {
		color.Yellow("No test files found")
		return nil
	}

	counts := make(map[string]int)
	if results, err := d.Storage.Load(); err != nil {
		d.Logger.Warn("no results loaded, marker counts unavailable", "error", err)
	} else {
		d.Reconciler.CoarseReconcile(results.Files, d.Collection)
		for i, f := range files {
			files[i] = d.Resolve(f)
			entries, _ := d.Collection.Get(files[i])
			counts[files[i]] = len(entries)
		}
	}

	d.Formatter.PrintTestList(files, counts)
	return nil
}
