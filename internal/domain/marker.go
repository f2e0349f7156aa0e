package domain

import "fmt"

// Severity defines the importance of a marker. Markers are always errors;
// the zero value is unset.
type Severity uint8

const SeverityError Severity = 1

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	if string(text) != "error" {
		return fmt.Errorf("unknown severity %q", text)
	}
	*s = SeverityError
	return nil
}

// Position is a 0-based line and a 0-based character (rune) offset.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range spans Start (inclusive) to End (exclusive).
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Empty reports whether the range is zero-width.
func (r Range) Empty() bool {
	return r.Start == r.End
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", r.Start.Line+1, r.Start.Character, r.End.Line+1, r.End.Character)
}

// MarkerEntry is one problem marker attached to a file.
type MarkerEntry struct {
	File     string   `json:"file"`
	Message  string   `json:"message"`
	Range    Range    `json:"range"`
	Severity Severity `json:"severity"`
	Source   string   `json:"source"`
}
