// Package adapter provides system adapters for Linux operations
package adapter

import (
	"os"
	"path/filepath"

	"github.com/barakbk-hailo/OpenHD-SysUtils/internal/shared/utils"
)

// FS abstracts the filesystem reads used by identity extraction so the
// sysfs walk can be tested against a synthetic tree.
type FS interface {
	Exists(path string) bool
	ReadFile(path string) string
	RealPath(path string) string
	ListDir(path string) []string
}

// OSFS is the real-filesystem implementation of FS.
type OSFS struct{}

// Exists reports whether the path exists.
func (OSFS) Exists(path string) bool {
	return utils.FileExists(path)
}

// ReadFile returns the file content, or an empty string on any error.
func (OSFS) ReadFile(path string) string {
	return utils.ReadFileString(path)
}

// RealPath resolves symlinks, falling back to the input path.
func (OSFS) RealPath(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

// ListDir returns the entry names of a directory, or nil on error.
func (OSFS) ListDir(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}
