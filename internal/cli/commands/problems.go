package commands

import (
	"github.com/spf13/cobra"

	"testmark/internal/ui"
)

// ProblemsCommand handles the problems command
type ProblemsCommand struct {
	deps *Dependencies
}

// NewProblemsCommand creates a new ProblemsCommand
func NewProblemsCommand(deps *Dependencies) *ProblemsCommand {
	return &ProblemsCommand{deps: deps}
}

// Execute opens the interactive problems panel
func (pc *ProblemsCommand) Execute(cmd *cobra.Command, args []string) error {
	d := pc.deps
	panel := ui.NewProblemsPanel(d.Reconciler, d.Collection, d.Storage, d.Buffers, d.Resolve, d.Formatter)
	return panel.View()
}
