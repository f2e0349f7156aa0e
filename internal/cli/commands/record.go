package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"testmark/internal/storage"
)

// RecordCommand handles the record command
type RecordCommand struct {
	deps  *Dependencies
	stdin io.Reader
}

// NewRecordCommand creates a new RecordCommand
func NewRecordCommand(deps *Dependencies) *RecordCommand {
	return &RecordCommand{deps: deps, stdin: os.Stdin}
}

// Execute reads a results document and writes it to the results path
func (rc *RecordCommand) Execute(cmd *cobra.Command, args []string) error {
	d := rc.deps
	in := rc.stdin
	if from := d.Config.Flags.From; from != "" {
		f, err := os.Open(from)
		if err != nil {
			return fmt.Errorf("open results: %w", err)
		}
		defer f.Close()
		in = f
	}

	doc, err := storage.Decode(in)
	if err != nil {
		return err
	}
	if err := d.Storage.Save(doc); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	color.Green("✓ Recorded %d file result(s) to %s", len(doc.Files), d.Config.GetResultsPath())
	if doc.Meta.FailedTestFiles > 0 {
		color.Red("✗ %d file(s) failed with %d failing assertion(s)", doc.Meta.FailedTestFiles, doc.Meta.FailedAssertions)
	}
	return nil
}
