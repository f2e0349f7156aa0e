package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CheckCommand handles the check command
type CheckCommand struct {
	deps *Dependencies
}

// NewCheckCommand creates a new CheckCommand
func NewCheckCommand(deps *Dependencies) *CheckCommand {
	return &CheckCommand{deps: deps}
}

// Execute runs the coarse pass over the stored results and prints the markers
func (cc *CheckCommand) Execute(cmd *cobra.Command, args []string) error {
	d := cc.deps
	results, err := d.Storage.Load()
	if err != nil {
		return err
	}

	d.Reconciler.CoarseReconcile(results.Files, d.Collection)
	files := d.filteredFiles()

	if d.Config.Flags.JSON {
		if err := d.Formatter.PrintJSON(d.Collection, files); err != nil {
			return err
		}
	} else {
		d.Formatter.PrintMarkers(d.Collection, files, d.Reconciler.CountFailingFiles(d.Collection))
	}

	if d.Config.Flags.Strict && len(files) > 0 {
		return fmt.Errorf("%d file(s) have failing tests", len(files))
	}
	return nil
}
