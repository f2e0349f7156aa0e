package domain

import "strings"

// NameSeparator joins the components of an assertion identifier into its display name.
const NameSeparator = " > "

// AssertionStatus is one reported test/assertion outcome
type AssertionStatus struct {
	Status       Status            `json:"status" yaml:"status"`
	Identifier   []string          `json:"identifier,omitempty" yaml:"identifier,omitempty"` // suite path + test name
	ShortMessage string            `json:"short_message,omitempty" yaml:"short_message,omitempty"`
	Message      string            `json:"message,omitempty" yaml:"message,omitempty"`
	Line         int               `json:"line,omitempty" yaml:"line,omitempty"`             // 1-based, <= 0 is unknown
	EndLine      int               `json:"end_line,omitempty" yaml:"end_line,omitempty"`     // 1-based end of the declared range
	ErrorLine    int               `json:"error_line,omitempty" yaml:"error_line,omitempty"` // 1-based line the failure points at
	Group        []AssertionStatus `json:"group,omitempty" yaml:"group,omitempty"`
}

// DisplayName joins the hierarchical identifier with NameSeparator. Empty
// components are skipped.
func (a AssertionStatus) DisplayName() string {
	parts := make([]string, 0, len(a.Identifier))
	for _, p := range a.Identifier {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, NameSeparator)
}

// AnchorLine is the 1-based line the precise pass anchors a marker to: the
// explicit error line when present, else the end of the declared range, else
// the declared line.
func (a AssertionStatus) AnchorLine() int {
	if a.ErrorLine > 0 {
		return a.ErrorLine
	}
	if a.EndLine > 0 {
		return a.EndLine
	}
	return a.Line
}

// Flatten returns the assertion followed by all of its grouped sub-results,
// depth first.
func (a AssertionStatus) Flatten() []AssertionStatus {
	out := []AssertionStatus{a}
	for _, g := range a.Group {
		out = append(out, g.Flatten()...)
	}
	return out
}

// FileTestStatus aggregates the assertions reported for one test file
type FileTestStatus struct {
	Path       string            `json:"path" yaml:"path"`
	Status     Status            `json:"status" yaml:"status"`
	Message    string            `json:"message,omitempty" yaml:"message,omitempty"` // file-level error (parse/compile failure)
	Assertions []AssertionStatus `json:"assertions,omitempty" yaml:"assertions,omitempty"`
}

// DerivedStatus computes the aggregate from the file-level message and the
// top-level assertions. It falls back to the stored status when nothing in
// the record decides it.
func (f FileTestStatus) DerivedStatus() Status {
	if f.Message != "" {
		return StatusFail
	}
	passed := false
	for _, a := range f.Assertions {
		switch a.Status {
		case StatusFail:
			return StatusFail
		case StatusPass:
			passed = true
		}
	}
	if passed {
		return StatusPass
	}
	return f.Status
}

// FailedAssertions counts failing top-level assertions.
func (f FileTestStatus) FailedAssertions() int {
	n := 0
	for _, a := range f.Assertions {
		if a.Status == StatusFail {
			n++
		}
	}
	return n
}
