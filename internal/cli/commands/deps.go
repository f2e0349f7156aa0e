package commands

import (
	"io"
	"log/slog"

	"testmark/internal/config"
	"testmark/internal/discovery"
	"testmark/internal/logger"
	"testmark/internal/markers"
	"testmark/internal/storage"
	"testmark/internal/ui"
	"testmark/internal/workspace"
)

// Dependencies are built once per process after flags and config are loaded.
type Dependencies struct {
	Config     *config.Config
	Logger     *slog.Logger
	Resolve    func(string) string
	Collection *markers.Collection
	Reconciler *markers.Reconciler
	Storage    storage.Storage
	Buffers    *workspace.Buffers
	Scanner    *discovery.Scanner
	Filter     *discovery.Filter
	Formatter  *ui.Formatter
}

// NewDependencies wires every component from cfg. Console output goes to out.
func NewDependencies(cfg *config.Config, out io.Writer) *Dependencies {
	root := cfg.GetProjectRoot()
	log := logger.New(cfg.LogFormat, cfg.Flags.Verbose)
	resolve := workspace.Resolver(root)

	return &Dependencies{
		Config:     cfg,
		Logger:     log,
		Resolve:    resolve,
		Collection: markers.NewCollection(),
		Reconciler: markers.NewReconciler(
			markers.WithResolver(resolve),
			markers.WithExistsFunc(workspace.Exists),
			markers.WithSource(cfg.Source),
			markers.WithFallbackMessages(cfg.FileErrorMessage, cfg.UnknownErrorMessage),
			markers.WithLogger(log),
		),
		Storage:   storage.NewJSONStorage(cfg),
		Buffers:   workspace.NewBuffers(),
		Scanner:   discovery.NewScanner(cfg.PathsToIgnore, cfg.TestSuffixes),
		Filter:    discovery.NewFilter(),
		Formatter: ui.NewFormatter(out, root),
	}
}

// Close disposes the marker collection.
func (d *Dependencies) Close() {
	if d == nil || d.Collection == nil {
		return
	}
	d.Collection.Dispose()
}

// filteredFiles returns the files holding markers whose name matches the name filter.
func (d *Dependencies) filteredFiles() []string {
	return d.Filter.FilterByName(d.Collection.Files(), d.Config.Flags.NameFilter)
}
