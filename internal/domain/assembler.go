package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cisolate/cisolate/internal/adapter"
	m "github.com/cisolate/cisolate/internal/model"
)

// Conventions carries the fixed naming rules of generated packages so they
// travel explicitly into the assembler instead of living as ambient state.
type Conventions struct {
	// Marker is the delimiting comment separating synthesized scaffolding
	// from the verbatim function text. Downstream tooling locates it to
	// splice in a freshly extracted body, so its exact spelling is a
	// public contract.
	Marker string

	// LanguageStandard is the C standard handed to the parser.
	LanguageStandard string
}

// DefaultConventions returns the conventions every production run uses.
func DefaultConventions() Conventions {
	return Conventions{
		Marker:           "/* FUNCTION TO TEST */",
		LanguageStandard: "c11",
	}
}

// IncludeGuard derives the header guard macro from the function name.
func (c Conventions) IncludeGuard(function string) string {
	return "TEST_" + strings.ToUpper(function) + "_H"
}

// Assembler materializes per-function test packages on disk, applying the
// idempotent three-case update policy:
//
//   - package absent: create test/ and src/, write the stub test, populate src/;
//   - package present with empty src/: repopulate src/ only;
//   - package present with non-empty src/: skip, the contents are manual now.
type Assembler struct {
	fs   adapter.SourceFSAdapter
	conv Conventions
}

// NewAssembler creates a new Assembler.
func NewAssembler(fs adapter.SourceFSAdapter, conv Conventions) *Assembler {
	return &Assembler{fs: fs, conv: conv}
}

// Inspect reports the on-disk state of the package for a function without
// touching anything.
func (a *Assembler) Inspect(outRoot m.Path, function string) (m.PackageState, m.TestPackage, error) {
	pkg := m.TestPackage{Function: function, Root: outRoot}

	if !a.fs.DirExists(pkg.Dir()) {
		return m.StateAbsent, pkg, nil
	}

	entries, err := a.fs.DirEntries(pkg.SrcDir())
	if err != nil {
		return "", pkg, fmt.Errorf("failed to inspect %s: %w", pkg.SrcDir(), err)
	}

	if len(entries) == 0 {
		return m.StateEmptySrc, pkg, nil
	}

	return m.StateCustomized, pkg, nil
}

// Assemble resolves the package for one analyzed function and applies the
// update policy. Filesystem write errors are returned as-is; no rollback is
// attempted, so a failed run can leave src/ partially populated and a later
// run resumes from whatever state survived.
func (a *Assembler) Assemble(outRoot m.Path, fa FunctionAnalysis, headers []m.SourceFile) (m.Result, error) {
	result := m.Result{
		Function: fa.Function.Name,
		Calls:    len(fa.Deps.Calls),
		Globals:  len(fa.Deps.Globals),
		Statics:  len(fa.Deps.Statics),
	}

	state, pkg, err := a.Inspect(outRoot, fa.Function.Name)
	if err != nil {
		return result, err
	}

	result.Package = pkg.Dir()
	result.State = state

	if state == m.StateCustomized {
		result.Outcome = m.OutcomeSkipped
		return result, nil
	}

	if state == m.StateAbsent {
		if err := a.fs.MkdirAll(pkg.TestDir(), 0o750); err != nil {
			return result, err
		}
	}

	if err := a.fs.MkdirAll(pkg.SrcDir(), 0o750); err != nil {
		return result, err
	}

	plans := make([]AccessorPlan, 0, len(fa.Deps.Statics))
	for _, v := range fa.Deps.Statics {
		plans = append(plans, SynthesizeAccessors(v))
	}

	if err := a.writeHeader(pkg, fa, plans, headers); err != nil {
		return result, err
	}

	if err := a.writeImplementation(pkg, fa, plans); err != nil {
		return result, err
	}

	if err := a.copyHeaders(pkg, fa.Function.Name, headers); err != nil {
		return result, err
	}

	if state == m.StateAbsent {
		if err := a.writeStubTest(pkg, fa.Function.Name, headers); err != nil {
			return result, err
		}
	}

	result.Outcome = m.OutcomeGenerated

	return result, nil
}

// writeHeader emits src/<F>.h: the include guard, every discovered header,
// the support headers any accessor needs, the function prototype and the
// accessor prototypes in variable-name order.
func (a *Assembler) writeHeader(pkg m.TestPackage, fa FunctionAnalysis, plans []AccessorPlan, headers []m.SourceFile) error {
	guard := a.conv.IncludeGuard(fa.Function.Name)

	lines := []string{
		"#ifndef " + guard,
		"#define " + guard,
		"",
	}

	for _, h := range headers {
		lines = append(lines, fmt.Sprintf("#include %q", h.Name()))
	}

	lines = append(lines, "")

	needStddef, needString := supportHeaders(plans)
	if needStddef {
		lines = append(lines, "#include <stddef.h>")
	}

	if needString {
		lines = append(lines, "#include <string.h>")
	}

	if needStddef || needString {
		lines = append(lines, "")
	}

	lines = append(lines, fa.Function.Prototype())

	for _, plan := range plans {
		for _, acc := range plan.Accessors {
			lines = append(lines, acc.Declaration)
		}
	}

	lines = append(lines, "", "#endif /* "+guard+" */", "")

	path := m.Path(filepath.Join(string(pkg.SrcDir()), fa.Function.Name+".h"))

	return a.fs.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o640)
}

// writeImplementation emits src/<F>.c: copied global definitions, copied
// static declarations each followed by its accessor bodies, then the
// delimiting marker and the verbatim function text.
func (a *Assembler) writeImplementation(pkg m.TestPackage, fa FunctionAnalysis, plans []AccessorPlan) error {
	lines := []string{
		fmt.Sprintf("#include %q", fa.Function.Name+".h"),
		"#include <stddef.h>",
		"#include <string.h>",
		"",
	}

	if len(fa.Deps.Globals) > 0 {
		lines = append(lines, "/* globals used (real definitions) */")
		for _, v := range fa.Deps.Globals {
			lines = append(lines, terminated(v.DeclText))
		}

		lines = append(lines, "")
	}

	if len(plans) > 0 {
		lines = append(lines, "/* static globals (copied) */")
		for _, plan := range plans {
			lines = append(lines, terminated(plan.Variable.DeclText))
			for _, acc := range plan.Accessors {
				lines = append(lines, acc.Definition)
			}
		}

		lines = append(lines, "")
	}

	lines = append(lines, a.conv.Marker, fa.Function.Text)

	path := m.Path(filepath.Join(string(pkg.SrcDir()), fa.Function.Name+".c"))

	return a.fs.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o640)
}

// copyHeaders copies every discovered header into src/ with the isolated
// function's prototype removed, so the local definition is the only
// declaration in the package.
func (a *Assembler) copyHeaders(pkg m.TestPackage, function string, headers []m.SourceFile) error {
	for _, h := range headers {
		content, err := a.fs.ReadFile(h.Path)
		if err != nil {
			return fmt.Errorf("failed to read header %s: %w", h.Path, err)
		}

		cleaned := RemoveFunctionPrototype(string(content), function)
		path := m.Path(filepath.Join(string(pkg.SrcDir()), h.Name()))

		if err := a.fs.WriteFile(path, []byte(cleaned), 0o640); err != nil {
			return err
		}
	}

	return nil
}

// writeStubTest emits test/test_<F>.c with empty hooks and one ignored
// placeholder test. Written only when the package is first created; the
// test/ tree belongs to humans afterwards.
func (a *Assembler) writeStubTest(pkg m.TestPackage, function string, headers []m.SourceFile) error {
	lines := []string{
		fmt.Sprintf("#include <%s.h>", function),
		`#include "unity.h"`,
		"",
	}

	for _, h := range headers {
		lines = append(lines, fmt.Sprintf("#include %q", "mock_"+h.Name()))
	}

	lines = append(lines,
		"",
		"void setUp(void) {}",
		"void tearDown(void) {}",
		"",
		fmt.Sprintf("void test_%s(void)", function),
		"{",
		`    TEST_IGNORE_MESSAGE("Auto-generated stub test");`,
		"}",
		"",
	)

	path := m.Path(filepath.Join(string(pkg.TestDir()), "test_"+function+".c"))

	return a.fs.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o640)
}

func supportHeaders(plans []AccessorPlan) (needStddef, needString bool) {
	for _, plan := range plans {
		needStddef = needStddef || plan.NeedsStddef
		needString = needString || plan.NeedsString
	}

	return needStddef, needString
}

// terminated normalizes a copied declaration to end with a statement
// terminator.
func terminated(decl string) string {
	decl = strings.TrimSpace(decl)
	if !strings.HasSuffix(decl, ";") {
		decl += ";"
	}

	return decl
}
