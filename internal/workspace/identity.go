package workspace

import (
	"os"
	"path/filepath"
)

// Resolve turns a reported path into the canonical file identity used as the
// marker collection key. Relative paths are taken relative to root.
func Resolve(root, path string) string {
	if path == "" {
		return ""
	}
	if !filepath.IsAbs(path) && root != "" {
		path = filepath.Join(root, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Clean(path)
}

// Resolver returns Resolve bound to root.
func Resolver(root string) func(string) string {
	return func(path string) string {
		return Resolve(root, path)
	}
}

// Exists reports whether path currently exists on disk. Any stat error other
// than "not exist" counts as existing so a transient permission problem does
// not drop markers.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
