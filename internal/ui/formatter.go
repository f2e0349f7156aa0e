package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"

	"testmark/internal/domain"
)

// Formatter prints markers and test files to the console
type Formatter struct {
	out  io.Writer
	root string
}

// NewFormatter creates a Formatter writing to out. Paths below root are
// printed relative to it.
func NewFormatter(out io.Writer, root string) *Formatter {
	return &Formatter{out: out, root: root}
}

// MarkerSource is the read side of a marker collection.
type MarkerSource interface {
	Files() []string
	Get(file string) ([]domain.MarkerEntry, bool)
}

// treeNode is one directory or file in the printed marker tree
type treeNode struct {
	name     string
	children map[string]*treeNode
	markers  []domain.MarkerEntry
	isFile   bool
}

// PrintMarkers prints every file in files with its markers as a directory tree
// followed by a summary line.
func (f *Formatter) PrintMarkers(src MarkerSource, files []string, failingFiles int) {
	if len(files) == 0 {
		fmt.Fprintln(f.out, color.GreenString("✓ No problems found"))
		return
	}

	root := &treeNode{children: make(map[string]*treeNode)}
	total := 0
	for _, file := range files {
		entries, _ := src.Get(file)
		total += len(entries)

		current := root
		parts := strings.Split(filepath.ToSlash(f.Rel(file)), "/")
		for i, part := range parts {
			if part == "" {
				continue
			}
			child := current.children[part]
			if child == nil {
				child = &treeNode{name: part, children: make(map[string]*treeNode), isFile: i == len(parts)-1}
				current.children[part] = child
			}
			current = child
		}
		current.markers = entries
	}

	f.printNode(root, "")
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, color.RedString("✗ %d problem(s) in %d file(s)", total, failingFiles))
}

func (f *Formatter) printNode(node *treeNode, prefix string) {
	keys := make([]string, 0, len(node.children))
	for key := range node.children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		child := node.children[key]
		connector, nextPrefix := "├─ ", "│  "
		if i == len(keys)-1 {
			connector, nextPrefix = "└─ ", "   "
		}

		if child.isFile {
			fmt.Fprintln(f.out, prefix+connector+color.YellowString("%s", child.name))
			for _, m := range child.markers {
				fmt.Fprintf(f.out, "%s%s%s %s\n", prefix, nextPrefix,
					color.CyanString("%d:%d", m.Range.Start.Line+1, m.Range.Start.Character+1),
					color.RedString("%s", summaryLine(m.Message)))
			}
		} else {
			fmt.Fprintln(f.out, prefix+connector+color.CyanString("%s", child.name))
		}
		f.printNode(child, prefix+nextPrefix)
	}
}

// PrintJSON writes the markers of files as a JSON object keyed by file.
func (f *Formatter) PrintJSON(src MarkerSource, files []string) error {
	out := make(map[string][]domain.MarkerEntry, len(files))
	for _, file := range files {
		out[file], _ = src.Get(file)
	}
	enc := json.NewEncoder(f.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode markers: %w", err)
	}
	return nil
}

// PrintTestList prints discovered test files with their marker counts.
func (f *Formatter) PrintTestList(files []string, counts map[string]int) {
	fmt.Fprintln(f.out, color.CyanString("Found %d test file(s):", len(files)))
	for _, file := range files {
		name := f.Rel(file)
		if n := counts[file]; n > 0 {
			fmt.Fprintf(f.out, "  %s %s\n", color.RedString("✗"), color.YellowString("%s (%d)", name, n))
		} else {
			fmt.Fprintf(f.out, "  %s %s\n", color.GreenString("✓"), name)
		}
	}
}

// Rel returns path relative to the formatter's root when it lies below it.
func (f *Formatter) Rel(path string) string {
	if f.root == "" {
		return path
	}
	rel, err := filepath.Rel(f.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// summaryLine flattens a multi-line marker message to "name: first line".
func summaryLine(msg string) string {
	lines := strings.Split(strings.TrimSpace(msg), "\n")
	if len(lines) == 1 {
		return lines[0]
	}
	return lines[0] + ": " + strings.TrimSpace(lines[1])
}
