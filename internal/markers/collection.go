package markers

import (
	"sort"

	"testmark/internal/domain"
)

// Collection holds the marker set of every file, keyed by file identity.
// It is not safe for concurrent use; callers serialize access.
type Collection struct {
	entries  map[string][]domain.MarkerEntry
	disposed bool
}

// NewCollection creates the process-wide marker collection.
func NewCollection() *Collection {
	return &Collection{entries: make(map[string][]domain.MarkerEntry)}
}

// Set replaces the marker set of file. An empty set removes the file so a
// file without markers is always absent rather than present with no entries.
func (c *Collection) Set(file string, entries []domain.MarkerEntry) {
	if c.disposed {
		return
	}
	if len(entries) == 0 {
		delete(c.entries, file)
		return
	}
	c.entries[file] = append([]domain.MarkerEntry(nil), entries...)
}

// Delete removes the marker set of file. Deleting an absent file is a no-op.
func (c *Collection) Delete(file string) {
	delete(c.entries, file)
}

// Clear removes every marker set.
func (c *Collection) Clear() {
	clear(c.entries)
}

// Get returns the marker set of file.
func (c *Collection) Get(file string) ([]domain.MarkerEntry, bool) {
	entries, ok := c.entries[file]
	return entries, ok
}

// Files returns the identities currently holding markers, sorted.
func (c *Collection) Files() []string {
	files := make([]string, 0, len(c.entries))
	for f := range c.entries {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Len returns the number of files holding markers.
func (c *Collection) Len() int {
	return len(c.entries)
}

// Dispose clears the collection at shutdown. Later calls to Set are ignored.
func (c *Collection) Dispose() {
	c.Clear()
	c.disposed = true
}
