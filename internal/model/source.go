// Package model defines the data structures for C function isolation.
package model

import "path/filepath"

// Path represents a file system path.
type Path string

// FileKind distinguishes the two source file categories the scanner yields.
type FileKind string

const (
	// KindHeader represents a .h file.
	KindHeader FileKind = "header"

	// KindImplementation represents a .c file.
	KindImplementation FileKind = "implementation"
)

// SourceFile is a discovered header or implementation file.
type SourceFile struct {
	Path Path
	Kind FileKind
}

// Name returns the base file name, e.g. "gpio.h" for "pltf/io/gpio.h".
func (f SourceFile) Name() string {
	return filepath.Base(string(f.Path))
}
