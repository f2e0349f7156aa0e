package markers

import (
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"testmark/internal/domain"
)

const (
	// DefaultSource tags every marker with the tool that produced it.
	DefaultSource = "testmark"
	// FileErrorMessage is used when a file failed without any assertions or message.
	FileErrorMessage = "test file error"
	// UnknownErrorMessage is used when a failing assertion carries no message.
	UnknownErrorMessage = "unknown error"
	// MessageSeparator sits between the display name and the error message.
	MessageSeparator = "\n"
)

// LineTextAccessor returns the text of a 0-based line in a file.
type LineTextAccessor interface {
	LineText(file string, line int) (string, error)
}

// Reconciler keeps a Collection in sync with reported test results.
type Reconciler struct {
	exists     func(path string) bool
	resolve    func(path string) string
	source     string
	fileError  string
	unknownErr string
	logger     *slog.Logger
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithExistsFunc sets the existence check used by the coarse-pass sweep.
func WithExistsFunc(fn func(path string) bool) Option {
	return func(r *Reconciler) { r.exists = fn }
}

// WithResolver sets how reported paths become file identities.
func WithResolver(fn func(path string) string) Option {
	return func(r *Reconciler) { r.resolve = fn }
}

// WithSource sets the source tag of emitted markers.
func WithSource(source string) Option {
	return func(r *Reconciler) {
		if source != "" {
			r.source = source
		}
	}
}

// WithFallbackMessages overrides the messages used when a failure carries none.
func WithFallbackMessages(fileError, unknownError string) Option {
	return func(r *Reconciler) {
		if fileError != "" {
			r.fileError = fileError
		}
		if unknownError != "" {
			r.unknownErr = unknownError
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReconciler creates a Reconciler. Without options every file is assumed to
// exist and paths are used as identities unchanged.
func NewReconciler(opts ...Option) *Reconciler {
	r := &Reconciler{
		exists:     func(string) bool { return true },
		resolve:    func(p string) string { return p },
		source:     DefaultSource,
		fileError:  FileErrorMessage,
		unknownErr: UnknownErrorMessage,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CoarseReconcile updates the collection from file-level results using only
// the reported line numbers, then drops markers of files that no longer exist.
// Files absent from results keep their markers unless the sweep removes them.
func (r *Reconciler) CoarseReconcile(results []domain.FileTestStatus, c *Collection) {
	for _, res := range results {
		file := r.resolve(res.Path)
		if res.Status != domain.StatusFail {
			r.remove(c, file, "not failing")
			continue
		}

		var entries []domain.MarkerEntry
		if len(res.Assertions) == 0 {
			msg := res.Message
			if msg == "" {
				msg = r.fileError
			}
			entries = append(entries, r.coarseEntry(file, 0, msg))
		} else {
			for _, a := range res.Assertions {
				if a.Status != domain.StatusFail {
					continue
				}
				entries = append(entries, r.coarseEntry(file, zeroBased(a.Line), composeMessage(a.DisplayName(), r.message(a))))
			}
		}

		if len(entries) == 0 {
			r.remove(c, file, "no failing assertions")
			continue
		}
		c.Set(file, entries)
		r.logger.Debug("coarse markers set", "file", file, "markers", len(entries))
	}

	for _, file := range c.Files() {
		if !r.exists(file) {
			r.remove(c, file, "file no longer exists")
		}
	}
}

// PreciseReconcile recomputes the markers of file from its full result list,
// including grouped sub-results, with ranges covering the live line text.
// An error from lines aborts the call and leaves the file's markers as they were.
func (r *Reconciler) PreciseReconcile(results []domain.AssertionStatus, c *Collection, file string, lines LineTextAccessor) error {
	if len(results) == 0 {
		r.remove(c, file, "no results")
		return nil
	}

	var flat []domain.AssertionStatus
	for _, res := range results {
		flat = append(flat, res.Flatten()...)
	}

	var entries []domain.MarkerEntry
	for _, a := range flat {
		if a.Status != domain.StatusFail {
			continue
		}
		line := zeroBased(a.AnchorLine())
		text, err := lines.LineText(file, line)
		if err != nil {
			return fmt.Errorf("resolve line %d of %s: %w", line+1, file, err)
		}

		entries = append(entries, domain.MarkerEntry{
			File:    file,
			Message: composeMessage(a.DisplayName(), r.message(a)),
			Range: domain.Range{
				Start: domain.Position{Line: line},
				End:   domain.Position{Line: line, Character: utf8.RuneCountInString(text)},
			},
			Severity: domain.SeverityError,
			Source:   r.source,
		})
	}

	c.Set(file, entries)
	r.logger.Debug("precise markers set", "file", file, "markers", len(entries))
	return nil
}

// ResetAll clears every marker, e.g. when a new test run starts.
func (r *Reconciler) ResetAll(c *Collection) {
	c.Clear()
	r.logger.Debug("markers reset")
}

// CountFailingFiles returns how many files currently hold at least one marker.
func (r *Reconciler) CountFailingFiles(c *Collection) int {
	n := 0
	for _, file := range c.Files() {
		if entries, _ := c.Get(file); len(entries) > 0 {
			n++
		}
	}
	return n
}

func (r *Reconciler) coarseEntry(file string, line int, msg string) domain.MarkerEntry {
	pos := domain.Position{Line: line}
	return domain.MarkerEntry{
		File:     file,
		Message:  msg,
		Range:    domain.Range{Start: pos, End: pos},
		Severity: domain.SeverityError,
		Source:   r.source,
	}
}

func (r *Reconciler) remove(c *Collection, file, reason string) {
	if _, ok := c.Get(file); !ok {
		return
	}
	c.Delete(file)
	r.logger.Debug("markers removed", "file", file, "reason", reason)
}

// message picks the short message, then the full one, then the fallback.
func (r *Reconciler) message(a domain.AssertionStatus) string {
	if a.ShortMessage != "" {
		return a.ShortMessage
	}
	if a.Message != "" {
		return a.Message
	}
	return r.unknownErr
}

// zeroBased converts a 1-based reported line to a 0-based index; unknown
// lines clamp to 0.
func zeroBased(line int) int {
	if line <= 0 {
		return 0
	}
	return line - 1
}

func composeMessage(name, msg string) string {
	if name == "" {
		return msg
	}
	return name + MessageSeparator + msg
}
