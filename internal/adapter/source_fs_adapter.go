package adapter

import (
	"os"
	"path/filepath"

	m "github.com/cisolate/cisolate/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain
// layer relies on when scanning C source trees and materializing test
// packages. It intentionally hides direct `os` access so the scanner and
// assembler logic can be tested without a mock filesystem growing into the
// domain.
type SourceFSAdapter interface {
	// Walk traverses the provided root path recursively. A root that does
	// not exist is not an error; the callback is simply never invoked.
	Walk(root m.Path, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions,
	// creating parent directories as needed.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path m.Path, perm os.FileMode) error

	// DirEntries returns the names of entries directly inside path. A
	// missing directory yields an empty list, not an error.
	DirEntries(path m.Path) ([]string, error)

	// DirExists reports whether path exists and is a directory.
	DirExists(path m.Path) bool
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the concrete implementation backing the
// SourceFSAdapter interface with direct os/filepath calls.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready
// to be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Walk iterates over files under root, descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, fn FilepathWalkFunc) error {
	rootStr := string(root)

	if info, err := os.Stat(rootStr); err != nil || !info.IsDir() {
		return nil
	}

	return filepath.Walk(rootStr, filepath.WalkFunc(fn))
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file, creating parent directories first.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// MkdirAll creates a directory and any missing parents.
func (a *LocalSourceFSAdapter) MkdirAll(path m.Path, perm os.FileMode) error {
	return os.MkdirAll(string(path), perm)
}

// DirEntries returns the names of entries directly inside path.
func (a *LocalSourceFSAdapter) DirEntries(path m.Path) ([]string, error) {
	entries, err := os.ReadDir(string(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	return names, nil
}

// DirExists reports whether path exists and is a directory.
func (a *LocalSourceFSAdapter) DirExists(path m.Path) bool {
	info, err := os.Stat(string(path))

	return err == nil && info.IsDir()
}
