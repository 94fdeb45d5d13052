package util

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// DisplayPath cleans p and converts it to forward slashes so recorded file
// paths look the same on every platform.
func DisplayPath(p string) string {
	clean := path.Clean(filepath.ToSlash(strings.TrimSpace(p)))
	if clean == "." {
		return ""
	}
	return strings.TrimPrefix(clean, "./")
}

// HasExtFold reports whether name ends with one of exts, ignoring case.
func HasExtFold(name string, exts ...string) bool {
	ext := filepath.Ext(name)
	for _, candidate := range exts {
		if strings.EqualFold(ext, candidate) {
			return true
		}
	}
	return false
}

// SortedStringKeys returns the map's keys in sorted order.
func SortedStringKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// WriteFileAtomic writes data next to path and renames it into place, creating
// missing parent directories. Readers never observe a half-written graph.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
