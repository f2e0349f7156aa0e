package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"testmark/internal/domain"
	"testmark/internal/markers"
	"testmark/internal/storage"
	"testmark/internal/workspace"
)

// ProblemsPanel is an interactive problems view over the marker collection.
// Selecting a file makes it the active target and runs the precise pass on it.
type ProblemsPanel struct {
	reconciler *markers.Reconciler
	collection *markers.Collection
	storage    storage.Storage
	buffers    *workspace.Buffers
	resolve    func(string) string
	formatter  *Formatter

	results *domain.ResultsDocument
	files   []string
	status  string
}

// NewProblemsPanel creates a ProblemsPanel. resolve must be the same identity
// resolver the reconciler was built with.
func NewProblemsPanel(
	r *markers.Reconciler,
	c *markers.Collection,
	st storage.Storage,
	buffers *workspace.Buffers,
	resolve func(string) string,
	formatter *Formatter,
) *ProblemsPanel {
	return &ProblemsPanel{
		reconciler: r,
		collection: c,
		storage:    st,
		buffers:    buffers,
		resolve:    resolve,
		formatter:  formatter,
	}
}

// Reload discards every marker, reads the results document again and runs
// the coarse pass over it.
func (p *ProblemsPanel) Reload() error {
	p.reconciler.ResetAll(p.collection)
	for _, f := range p.files {
		p.buffers.Invalidate(f)
	}

	results, err := p.storage.Load()
	if err != nil {
		p.files = nil
		return err
	}
	p.results = results
	p.reconciler.CoarseReconcile(results.Files, p.collection)
	p.files = p.collection.Files()
	p.status = fmt.Sprintf("loaded %d result file(s)", len(results.Files))
	return nil
}

// Activate runs the precise pass for file. A file whose overall status is not
// Fail loses its markers; one whose result carries no assertions keeps its
// coarse file-level marker.
func (p *ProblemsPanel) Activate(file string) error {
	if p.results == nil {
		return nil
	}
	res, ok := storage.FindFile(p.results, file, p.resolve)
	if !ok {
		return nil
	}
	if res.Status != domain.StatusFail {
		p.collection.Delete(file)
		p.status = fmt.Sprintf("%s is not failing", p.formatter.Rel(file))
		return nil
	}
	if len(res.Assertions) == 0 {
		return nil
	}
	if err := p.reconciler.PreciseReconcile(res.Assertions, p.collection, file, p.buffers); err != nil {
		return err
	}
	p.status = fmt.Sprintf("resolved %s", p.formatter.Rel(file))
	return nil
}

// Files returns the files listed in the panel, in display order.
func (p *ProblemsPanel) Files() []string {
	return p.files
}

// View runs the interactive panel until the user quits.
func (p *ProblemsPanel) View() error {
	if err := p.Reload(); err != nil {
		return err
	}
	if len(p.files) == 0 {
		p.formatter.PrintMarkers(p.collection, nil, 0)
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)
	statusView := tview.NewTextView().
		SetDynamicColors(true)
	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statusView, 2, 0, false).
		AddItem(detailsView, 0, 1, false)

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(" Problems (%d file(s)) | ↑↓ select file, → details, ← back, [yellow]r[white] reload, Ctrl+C exit ",
			p.reconciler.CountFailingFiles(p.collection)))
	}

	fillList := func() {
		list.Clear()
		for _, file := range p.files {
			list.AddItem(p.listItemText(file), "", 0, nil)
		}
		updateHeader()
	}

	showFile := func(index int) {
		if index < 0 || index >= len(p.files) {
			detailsView.SetText("")
			return
		}
		file := p.files[index]
		var status string
		if err := p.Activate(file); err != nil {
			status = fmt.Sprintf("[red]%s[white]", tview.Escape(err.Error()))
		} else {
			status = fmt.Sprintf("[gray]%s[white]", tview.Escape(p.status))
		}
		list.SetItemText(index, p.listItemText(file), "")
		updateHeader()
		statusView.SetText(fmt.Sprintf("[cyan]%s[white]\n%s", tview.Escape(p.formatter.Rel(file)), status))
		detailsView.SetText(p.formatDetails(file))
		detailsView.ScrollToBeginning()
	}

	list.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		showFile(index)
	})

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				if err := p.Reload(); err != nil {
					p.status = err.Error()
				}
				fillList()
				showFile(list.GetCurrentItem())
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	fillList()
	showFile(0)

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(body, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func (p *ProblemsPanel) listItemText(file string) string {
	entries, _ := p.collection.Get(file)
	name := tview.Escape(p.formatter.Rel(file))
	if len(entries) == 0 {
		return fmt.Sprintf("[green]✓[white] %s", name)
	}
	return fmt.Sprintf("[red]✗ %d[white] %s", len(entries), name)
}

// formatDetails renders the markers of file using tview color tags.
func (p *ProblemsPanel) formatDetails(file string) string {
	entries, ok := p.collection.Get(file)
	if !ok {
		return "[green]✓ No problems in this file[white]"
	}

	var b strings.Builder
	for i, m := range entries {
		loc := fmt.Sprintf("%d:%d", m.Range.Start.Line+1, m.Range.Start.Character+1)
		if !m.Range.Empty() {
			loc += fmt.Sprintf("-%d", m.Range.End.Character+1)
		}
		fmt.Fprintf(&b, "[yellow]%d.[white] [red]%s[white] [cyan]%s[white] [gray](%s)[white]\n",
			i+1, m.Severity, loc, tview.Escape(m.Source))
		fmt.Fprintf(&b, "%s\n\n", tview.Escape(m.Message))
	}
	return b.String()
}
