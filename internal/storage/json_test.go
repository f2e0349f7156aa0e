package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"testmark/internal/config"
	"testmark/internal/domain"
)

const sampleDocument = `{
  "meta": {"provider": "jest"},
  "files": [
    {"path": "a.test", "status": "failed", "assertions": [
      {"status": "failed", "identifier": ["suite", "case"], "short_message": "expected 1, got 2", "line": 5}
    ]},
    {"path": "b.test", "assertions": [{"status": "passed", "line": 1}]},
    {"path": "c.test", "message": "Cannot find module './x'"},
    {"path": "d.test"}
  ]
}`

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []domain.Status{domain.StatusFail, domain.StatusPass, domain.StatusFail, domain.StatusUnknown}
	if len(doc.Files) != len(expected) {
		t.Fatalf("expected %d files, got %d", len(expected), len(doc.Files))
	}
	for i, status := range expected {
		if doc.Files[i].Status != status {
			t.Errorf("file %s: expected %s, got %s", doc.Files[i].Path, status, doc.Files[i].Status)
		}
	}
	if doc.Files[0].Assertions[0].DisplayName() != "suite > case" {
		t.Errorf("unexpected display name %q", doc.Files[0].Assertions[0].DisplayName())
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode(strings.NewReader("{not json")); err == nil {
		t.Error("expected error for invalid document")
	}
}

func TestSummarize(t *testing.T) {
	doc, err := Decode(strings.NewReader(sampleDocument))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	Summarize(doc, now)

	meta := doc.Meta
	if meta.Provider != "jest" {
		t.Errorf("expected provider to be kept, got %q", meta.Provider)
	}
	if meta.TotalTestFiles != 4 || meta.FailedTestFiles != 2 || meta.PassedTestFiles != 1 {
		t.Errorf("unexpected counts %+v", meta)
	}
	if meta.FailedAssertions != 1 {
		t.Errorf("expected 1 failed assertion, got %d", meta.FailedAssertions)
	}
	if meta.Timestamp != "2026-10-19T12:00:00Z" {
		t.Errorf("unexpected timestamp %s", meta.Timestamp)
	}
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New()
	cfg.ProjectPath = dir
	st := NewJSONStorage(cfg)

	doc := &domain.ResultsDocument{Files: []domain.FileTestStatus{
		{Path: "a.test", Status: domain.StatusFail, Message: "boom"},
	}}
	if err := st.Save(doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultResultsDir, config.DefaultResultsFile)); err != nil {
		t.Fatalf("expected results file to be written: %v", err)
	}

	loaded, err := st.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded.Files) != 1 || loaded.Files[0].Message != "boom" {
		t.Errorf("unexpected files %+v", loaded.Files)
	}
	if loaded.Meta.FailedTestFiles != 1 {
		t.Errorf("expected meta to be stamped, got %+v", loaded.Meta)
	}
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	if _, err := NewJSONStorage(cfg).Load(); err == nil {
		t.Error("expected error for missing results file")
	}
}

func TestFindFile(t *testing.T) {
	doc := &domain.ResultsDocument{Files: []domain.FileTestStatus{{Path: "a.test"}, {Path: "b.test"}}}
	resolve := func(p string) string { return "/p/" + p }

	if f, ok := FindFile(doc, "/p/b.test", resolve); !ok || f.Path != "b.test" {
		t.Errorf("expected b.test, got %+v (found=%v)", f, ok)
	}
	if _, ok := FindFile(doc, "/p/c.test", resolve); ok {
		t.Error("expected c.test to be missing")
	}
}
