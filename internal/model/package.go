package model

import "path/filepath"

// PackageState is the on-disk state of a test package before a run touches it.
type PackageState string

const (
	// StateAbsent means the package directory does not exist yet.
	StateAbsent PackageState = "absent"

	// StateEmptySrc means the package exists but src/ is missing or empty.
	StateEmptySrc PackageState = "empty-src"

	// StateCustomized means src/ contains at least one entry and must not
	// be regenerated.
	StateCustomized PackageState = "customized"
)

// Outcome is the per-function result reported to the user.
type Outcome string

const (
	// OutcomeGenerated means src/ (and on first creation test/) was written.
	OutcomeGenerated Outcome = "generated"

	// OutcomeSkipped means the package was left untouched because src/ has
	// manual content.
	OutcomeSkipped Outcome = "skipped (already customized)"
)

// PackagePrefix names generated package directories. The scanner relies on
// it to keep prior output out of discovery.
const PackagePrefix = "TEST_"

// TestPackage identifies the generated directory tree isolating one function.
// Identity is the function name alone; two same-named functions from
// different files resolve to the same package.
type TestPackage struct {
	Function string
	Root     Path
}

// Dir returns the package directory, e.g. "<root>/TEST_add".
func (p TestPackage) Dir() Path {
	return Path(filepath.Join(string(p.Root), PackagePrefix+p.Function))
}

// SrcDir returns the always-regenerable source directory.
func (p TestPackage) SrcDir() Path {
	return Path(filepath.Join(string(p.Dir()), "src"))
}

// TestDir returns the write-once test directory.
func (p TestPackage) TestDir() Path {
	return Path(filepath.Join(string(p.Dir()), "test"))
}

// Result pairs a function with what happened to its package during a run.
type Result struct {
	Function string
	Package  Path
	State    PackageState
	Outcome  Outcome
	Calls    int
	Globals  int
	Statics  int
}
