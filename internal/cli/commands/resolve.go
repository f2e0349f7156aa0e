package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"testmark/internal/domain"
	"testmark/internal/storage"
	"testmark/internal/ui"
)

// ResolveCommand handles the resolve command
type ResolveCommand struct {
	deps *Dependencies
}

// NewResolveCommand creates a new ResolveCommand
func NewResolveCommand(deps *Dependencies) *ResolveCommand {
	return &ResolveCommand{deps: deps}
}

// Execute runs the coarse pass, then the precise pass for each target file.
// A file whose lines cannot be resolved keeps its coarse markers; the errors
// are returned together after the markers have been printed.
func (rc *ResolveCommand) Execute(cmd *cobra.Command, args []string) error {
	d := rc.deps
	results, err := d.Storage.Load()
	if err != nil {
		return err
	}
	d.Reconciler.CoarseReconcile(results.Files, d.Collection)

	targets := d.filteredFiles()
	if len(args) > 0 {
		targets = make([]string, 0, len(args))
		for _, arg := range args {
			targets = append(targets, d.Resolve(arg))
		}
	}

	var progress *ui.ProgressBar
	if len(targets) > 1 && !d.Config.Flags.JSON {
		progress = ui.NewProgressBar(len(targets))
	}

	var errs []error
	failing := 0
	for i, file := range targets {
		res, ok := storage.FindFile(results, file, d.Resolve)
		switch {
		case !ok:
			d.Logger.Warn("no results for file", "file", file)
		case res.Status != domain.StatusFail:
			d.Collection.Delete(file)
		case len(res.Assertions) == 0:
			// file-level failures have no lines to resolve
		default:
			if err := d.Reconciler.PreciseReconcile(res.Assertions, d.Collection, file, d.Buffers); err != nil {
				d.Logger.Warn("precise pass failed", "file", file, "error", err)
				errs = append(errs, err)
			}
		}
		if _, ok := d.Collection.Get(file); ok {
			failing++
		}
		if progress != nil {
			progress.Update(i+1, failing)
		}
	}
	if progress != nil {
		progress.Finish()
	}

	files := d.Filter.FilterByName(targets, d.Config.Flags.NameFilter)
	held := files[:0]
	for _, f := range files {
		if _, ok := d.Collection.Get(f); ok {
			held = append(held, f)
		}
	}

	if d.Config.Flags.JSON {
		if err := d.Formatter.PrintJSON(d.Collection, held); err != nil {
			return err
		}
	} else {
		d.Formatter.PrintMarkers(d.Collection, held, len(held))
	}
	return errors.Join(errs...)
}
