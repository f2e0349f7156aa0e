package domain

import "strings"

// Status is the outcome reported for a test file or a single assertion.
type Status int

const (
	// StatusUnknown covers skipped, pending and anything the provider could not classify.
	StatusUnknown Status = iota
	// StatusPass indicates the assertion (or every assertion in a file) passed.
	StatusPass
	// StatusFail indicates a failing assertion or a file that could not run.
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unrecognised values decode
// to StatusUnknown instead of failing the whole document.
func (s *Status) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

// ParseStatus maps the spellings used by common test reporters onto Status.
func ParseStatus(v string) Status {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "pass", "passed", "ok", "success":
		return StatusPass
	case "fail", "failed", "failure", "error":
		return StatusFail
	}
	return StatusUnknown
}
