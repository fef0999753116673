// Package domain contains the core C function isolation workflow and logic.
package domain

import (
	"os"
	"sort"
	"strings"

	"github.com/cisolate/cisolate/internal/adapter"
	m "github.com/cisolate/cisolate/internal/model"
)

// Scanner enumerates header and implementation files under the analysis
// roots.
type Scanner struct {
	fs adapter.SourceFSAdapter
}

// NewScanner creates a new Scanner.
func NewScanner(fs adapter.SourceFSAdapter) *Scanner {
	return &Scanner{fs: fs}
}

// Scan walks the given roots recursively and returns the discovered headers
// and implementation files, each list sorted by path. Roots that do not
// exist contribute nothing. Paths with a generated-package directory
// component are excluded.
func (s *Scanner) Scan(roots []m.Path) (headers, impls []m.SourceFile, err error) {
	for _, root := range roots {
		walkErr := s.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || inTestPackage(path) {
				return nil
			}

			switch {
			case strings.HasSuffix(path, ".h"):
				headers = append(headers, m.SourceFile{Path: m.Path(path), Kind: m.KindHeader})
			case strings.HasSuffix(path, ".c"):
				impls = append(impls, m.SourceFile{Path: m.Path(path), Kind: m.KindImplementation})
			}

			return nil
		})
		if walkErr != nil {
			return nil, nil, walkErr
		}
	}

	sortFiles(headers)
	sortFiles(impls)

	return headers, impls, nil
}

// inTestPackage reports whether any directory component of path names a
// generated test package.
func inTestPackage(path string) bool {
	for _, part := range strings.Split(path, string(os.PathSeparator)) {
		if strings.HasPrefix(part, m.PackagePrefix) {
			return true
		}
	}

	return false
}

func sortFiles(files []m.SourceFile) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
}
