package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"testmark/internal/domain"
)

// Load reads the results document from the configured results path.
func (s *JSONStorage) Load() (*domain.ResultsDocument, error) {
	path := s.cfg.GetResultsPath()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Save stamps the document's meta and writes it to the configured results path.
func (s *JSONStorage) Save(doc *domain.ResultsDocument) error {
	Summarize(doc, time.Now())

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	path := s.cfg.GetResultsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// Decode parses a results document and fills every Unknown file status with
// the status derived from its assertions.
func Decode(r io.Reader) (*domain.ResultsDocument, error) {
	var doc domain.ResultsDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	for i := range doc.Files {
		if doc.Files[i].Status == domain.StatusUnknown {
			doc.Files[i].Status = doc.Files[i].DerivedStatus()
		}
	}
	return &doc, nil
}

// Summarize recomputes the counters in doc.Meta and sets its timestamp.
func Summarize(doc *domain.ResultsDocument, now time.Time) {
	meta := domain.ResultsMeta{
		Provider:       doc.Meta.Provider,
		TotalTestFiles: len(doc.Files),
		Timestamp:      now.Format(time.RFC3339),
	}
	for _, f := range doc.Files {
		switch f.Status {
		case domain.StatusFail:
			meta.FailedTestFiles++
		case domain.StatusPass:
			meta.PassedTestFiles++
		}
		meta.FailedAssertions += f.FailedAssertions()
	}
	doc.Meta = meta
}

// FindFile returns the result for the file whose resolved identity is file.
func FindFile(doc *domain.ResultsDocument, file string, resolve func(string) string) (domain.FileTestStatus, bool) {
	for _, f := range doc.Files {
		if resolve(f.Path) == file {
			return f, true
		}
	}
	return domain.FileTestStatus{}, false
}
