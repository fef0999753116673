package model

import "sort"

// VarKind classifies a variable's shape for accessor synthesis.
type VarKind string

const (
	// KindScalar is any non-array variable, pointers included.
	KindScalar VarKind = "scalar"

	// KindArray is a variable of array type.
	KindArray VarKind = "array"
)

// StorageClass distinguishes translation-unit-scope variables by linkage.
type StorageClass string

const (
	// StorageGlobal is a file-scope variable with external linkage.
	StorageGlobal StorageClass = "global"

	// StorageStatic is a file-scope variable with internal linkage.
	StorageStatic StorageClass = "static"
)

// CountUnknown marks an array whose element count is not a compile-time
// constant visible in the declaration.
const CountUnknown = -1

// TypeDescriptor captures the classification the accessor synthesizer needs.
type TypeDescriptor struct {
	Kind VarKind
	// Elem is the element type spelling for arrays, the full type spelling
	// for scalars.
	Elem string
	// Count is the compile-time element count, CountUnknown if none.
	Count int
	Const bool
}

// VariableDependency is one file-scope variable referenced by a function.
type VariableDependency struct {
	Name    string
	Type    TypeDescriptor
	Storage StorageClass
	// DeclText is the verbatim source text of the declaration.
	DeclText string
	File     Path
	Line     int
}

// DependencySet holds everything one function depends on. The three
// collections are disjoint and duplicate-free.
type DependencySet struct {
	Calls   []string
	Globals []VariableDependency
	Statics []VariableDependency
}

// Sort orders all three collections by name so downstream emission is
// reproducible across runs.
func (d *DependencySet) Sort() {
	sort.Strings(d.Calls)
	sortVars(d.Globals)
	sortVars(d.Statics)
}

// Empty reports whether the function has no dependencies at all.
func (d DependencySet) Empty() bool {
	return len(d.Calls) == 0 && len(d.Globals) == 0 && len(d.Statics) == 0
}

func sortVars(vars []VariableDependency) {
	sort.Slice(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})
}
