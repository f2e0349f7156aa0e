package workspace

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrLineOutOfRange is returned when a line index does not exist in the
// current file content.
var ErrLineOutOfRange = errors.New("line out of range")

// Buffers is a File-Content Accessor over files on disk. Each file is read
// once and cached until Invalidate is called.
type Buffers struct {
	lines map[string][]string
	read  func(string) ([]byte, error)
}

// NewBuffers creates an empty accessor reading through os.ReadFile.
func NewBuffers() *Buffers {
	return &Buffers{
		lines: make(map[string][]string),
		read:  os.ReadFile,
	}
}

// Open registers in-memory content for file, replacing anything cached. The
// content wins over the file on disk until Invalidate is called.
func (b *Buffers) Open(file, content string) {
	b.lines[file] = splitLines(content)
}

// Invalidate drops the cached content of file.
func (b *Buffers) Invalidate(file string) {
	delete(b.lines, file)
}

// LineText returns the text of the 0-based line in file without its line
// terminator.
func (b *Buffers) LineText(file string, line int) (string, error) {
	lines, err := b.load(file)
	if err != nil {
		return "", err
	}
	if line < 0 || line >= len(lines) {
		return "", fmt.Errorf("%s:%d: %w (file has %d lines)", file, line+1, ErrLineOutOfRange, len(lines))
	}
	return lines[line], nil
}

func (b *Buffers) load(file string) ([]string, error) {
	if lines, ok := b.lines[file]; ok {
		return lines, nil
	}
	data, err := b.read(file)
	if err != nil {
		return nil, fmt.Errorf("read buffer: %w", err)
	}
	lines := splitLines(string(data))
	b.lines[file] = lines
	return lines, nil
}

func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	// A trailing newline does not start another line.
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
