package ui

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"testmark/internal/domain"
	"testmark/internal/markers"
	"testmark/internal/workspace"
)

func init() {
	color.NoColor = true
}

// memStorage serves a fixed results document.
type memStorage struct {
	doc *domain.ResultsDocument
	err error
}

func (m *memStorage) Load() (*domain.ResultsDocument, error) {
	return m.doc, m.err
}

func (m *memStorage) Save(doc *domain.ResultsDocument) error {
	m.doc = doc
	return nil
}

func TestFormatter_PrintMarkers(t *testing.T) {
	c := markers.NewCollection()
	c.Set("/p/web/cart.test.ts", []domain.MarkerEntry{
		{Message: "cart > adds item\nexpected 2, got 1", Range: domain.Range{Start: domain.Position{Line: 4}}},
	})
	c.Set("/p/tests/UserTest.php", []domain.MarkerEntry{
		{Message: "test file error"},
		{Message: "bare", Range: domain.Range{Start: domain.Position{Line: 9}}},
	})

	var buf bytes.Buffer
	NewFormatter(&buf, "/p").PrintMarkers(c, c.Files(), 2)
	out := buf.String()

	for _, want := range []string{
		"tests",
		"UserTest.php",
		"1:1 test file error",
		"10:1 bare",
		"cart.test.ts",
		"5:1 cart > adds item: expected 2, got 1",
		"3 problem(s) in 2 file(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Index(out, "tests") > strings.Index(out, "web") {
		t.Errorf("expected directories sorted, got:\n%s", out)
	}
}

func TestFormatter_PrintMarkers_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(&buf, "").PrintMarkers(markers.NewCollection(), nil, 0)
	if !strings.Contains(buf.String(), "No problems found") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestFormatter_PrintJSON(t *testing.T) {
	c := markers.NewCollection()
	c.Set("/p/a.test", []domain.MarkerEntry{{File: "/p/a.test", Message: "m", Severity: domain.SeverityError, Source: "testmark"}})

	var buf bytes.Buffer
	if err := NewFormatter(&buf, "/p").PrintJSON(c, c.Files()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string][]map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if decoded["/p/a.test"][0]["severity"] != "error" {
		t.Errorf("expected severity error, got %v", decoded["/p/a.test"][0]["severity"])
	}
}

func TestFormatter_PrintTestList(t *testing.T) {
	var buf bytes.Buffer
	NewFormatter(&buf, "/p").PrintTestList(
		[]string{"/p/a.test.ts", "/p/b.test.ts"},
		map[string]int{"/p/b.test.ts": 3},
	)
	out := buf.String()
	if !strings.Contains(out, "✓ a.test.ts") || !strings.Contains(out, "✗ b.test.ts (3)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestFormatter_Rel(t *testing.T) {
	f := NewFormatter(nil, "/p")
	if got := f.Rel("/p/x/a.ts"); got != filepath.Join("x", "a.ts") {
		t.Errorf("expected x/a.ts, got %s", got)
	}
	if got := f.Rel("/elsewhere/a.ts"); got != "/elsewhere/a.ts" {
		t.Errorf("expected path outside root unchanged, got %s", got)
	}
}

func newTestPanel(t *testing.T, doc *domain.ResultsDocument) (*ProblemsPanel, *markers.Collection, string) {
	t.Helper()
	dir := t.TempDir()
	src := "describe('cart', () => {\n  it('adds item', () => {\n    expect(total).toBe(2);\n  });\n});\n"
	if err := os.WriteFile(filepath.Join(dir, "cart.test.ts"), []byte(src), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	resolve := workspace.Resolver(dir)
	r := markers.NewReconciler(markers.WithResolver(resolve), markers.WithExistsFunc(workspace.Exists))
	c := markers.NewCollection()
	p := NewProblemsPanel(r, c, &memStorage{doc: doc}, workspace.NewBuffers(), resolve, NewFormatter(nil, dir))
	return p, c, dir
}

func TestProblemsPanel_ReloadAndActivate(t *testing.T) {
	doc := &domain.ResultsDocument{Files: []domain.FileTestStatus{{
		Path:   "cart.test.ts",
		Status: domain.StatusFail,
		Assertions: []domain.AssertionStatus{{
			Status:       domain.StatusFail,
			Identifier:   []string{"cart", "adds item"},
			ShortMessage: "expected 2, got 1",
			Line:         2,
			EndLine:      4,
			ErrorLine:    3,
		}},
	}}}
	p, c, dir := newTestPanel(t, doc)
	file := filepath.Join(dir, "cart.test.ts")

	if err := p.Reload(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	coarse, ok := c.Get(file)
	if !ok || coarse[0].Range.Start.Line != 1 || !coarse[0].Range.Empty() {
		t.Fatalf("expected coarse marker on line 1, got %+v", coarse)
	}

	if err := p.Activate(file); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	precise, _ := c.Get(file)
	if precise[0].Range.Start.Line != 2 || precise[0].Range.End.Character != len("    expect(total).toBe(2);") {
		t.Errorf("expected precise range on line 2, got %s", precise[0].Range)
	}

	details := p.formatDetails(file)
	if !strings.Contains(details, "expected 2, got 1") {
		t.Errorf("expected details to contain message, got %q", details)
	}
}

func TestProblemsPanel_ActivateKeepsFileLevelMarker(t *testing.T) {
	doc := &domain.ResultsDocument{Files: []domain.FileTestStatus{{
		Path: "cart.test.ts", Status: domain.StatusFail, Message: "SyntaxError",
	}}}
	p, c, dir := newTestPanel(t, doc)
	file := filepath.Join(dir, "cart.test.ts")

	if err := p.Reload(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Activate(file); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.Get(file); !ok {
		t.Error("expected file-level marker to survive activation")
	}
}

func TestProblemsPanel_ActivateNonFailingFile(t *testing.T) {
	doc := &domain.ResultsDocument{Files: []domain.FileTestStatus{{
		Path:   "cart.test.ts",
		Status: domain.StatusPass,
		Assertions: []domain.AssertionStatus{{
			Status:     domain.StatusFail,
			Identifier: []string{"cart", "adds item"},
			Line:       3,
		}},
	}}}
	p, c, dir := newTestPanel(t, doc)
	file := filepath.Join(dir, "cart.test.ts")

	if err := p.Reload(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.Set(file, []domain.MarkerEntry{{File: file, Message: "stale"}})

	if err := p.Activate(file); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries, ok := c.Get(file); ok {
		t.Errorf("expected no markers for a passing file, got %+v", entries)
	}
}

func TestProblemsPanel_ActivateOutOfRange(t *testing.T) {
	doc := &domain.ResultsDocument{Files: []domain.FileTestStatus{{
		Path:       "cart.test.ts",
		Status:     domain.StatusFail,
		Assertions: []domain.AssertionStatus{{Status: domain.StatusFail, Line: 99}},
	}}}
	p, _, dir := newTestPanel(t, doc)
	if err := p.Reload(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := p.Activate(filepath.Join(dir, "cart.test.ts"))
	if !errors.Is(err, workspace.ErrLineOutOfRange) {
		t.Errorf("expected ErrLineOutOfRange, got %v", err)
	}
}

func TestProblemsPanel_ReloadError(t *testing.T) {
	p, c, _ := newTestPanel(t, nil)
	p.storage = &memStorage{err: errors.New("no results")}
	c.Set("/stale", []domain.MarkerEntry{{File: "/stale"}})

	if err := p.Reload(); err == nil {
		t.Fatal("expected error")
	}
	if c.Len() != 0 {
		t.Error("expected reload to reset markers before loading")
	}
}
