package domain

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/cisolate/cisolate/internal/controller"
	m "github.com/cisolate/cisolate/internal/model"
)

// Conventional directory names around the workspace. The analysis roots are
// fixed sibling directories of the workspace; generated packages land in a
// sibling output root unless overridden.
const (
	platformDirName = "pltf"
	configDirName   = "cfg"
	outputDirName   = "unitTest"
)

// RunArgs is the resolved invocation of one generator run.
type RunArgs struct {
	Workspace  m.Path
	OutRoot    m.Path
	ScanRoots  []m.Path
	ExtraFlags []string
}

// ResolveLayout derives scan roots and the output root from the workspace
// path. An empty outOverride selects the conventional sibling directory.
func ResolveLayout(workspace, outOverride m.Path, extraFlags []string) RunArgs {
	abs, err := filepath.Abs(string(workspace))
	if err != nil {
		abs = filepath.Clean(string(workspace))
	}

	parent := filepath.Dir(abs)

	outRoot := filepath.Join(parent, outputDirName)
	if outOverride != "" {
		outRoot = string(outOverride)
	}

	return RunArgs{
		Workspace: m.Path(abs),
		OutRoot:   m.Path(outRoot),
		ScanRoots: []m.Path{
			m.Path(filepath.Join(parent, platformDirName)),
			m.Path(filepath.Join(parent, configDirName)),
		},
		ExtraFlags: extraFlags,
	}
}

// ParserFlags builds the parse configuration: the language standard, include
// search paths derived from the scan roots and the current directory, and
// the pass-through flags from the invocation boundary.
func (a RunArgs) ParserFlags(conv Conventions) []string {
	flags := []string{"-std=" + conv.LanguageStandard}
	for _, root := range a.ScanRoots {
		flags = append(flags, "-I"+string(root))
	}

	flags = append(flags, "-I.")
	flags = append(flags, a.ExtraFlags...)

	return flags
}

// Workflow wires scanner, analyzer and assembler into the sequential
// generation run: files one at a time, functions one at a time, no
// concurrency and no feedback loop.
type Workflow struct {
	scanner   *Scanner
	analyzer  *Analyzer
	assembler *Assembler
	conv      Conventions
	ui        controller.UI
}

// NewWorkflow creates a new Workflow.
func NewWorkflow(scanner *Scanner, analyzer *Analyzer, assembler *Assembler, conv Conventions, ui controller.UI) *Workflow {
	return &Workflow{
		scanner:   scanner,
		analyzer:  analyzer,
		assembler: assembler,
		conv:      conv,
		ui:        ui,
	}
}

// Generate runs discovery, analysis and package assembly for every function
// defined under the scan roots. Analysis failures skip the affected file
// with a reported diagnostic; write failures abort the run.
func (w *Workflow) Generate(ctx context.Context, args RunArgs) error {
	headers, impls, results, err := w.analyze(ctx, args, func(fa FunctionAnalysis, headers []m.SourceFile) (m.Result, error) {
		return w.assembler.Assemble(args.OutRoot, fa, headers)
	})
	if err != nil {
		return err
	}

	generated, skipped := 0, 0

	for _, r := range results {
		switch r.Outcome {
		case m.OutcomeGenerated:
			generated++
		case m.OutcomeSkipped:
			skipped++
		}
	}

	slog.Info("generation finished",
		"headers", len(headers),
		"files", len(impls),
		"functions", len(results),
		"generated", generated,
		"skipped", skipped,
	)

	return w.ui.DisplayRun(ctx, results)
}

// List performs discovery and analysis only, reporting every function with
// its dependency counts and the package state a generation run would see.
// Nothing is written.
func (w *Workflow) List(ctx context.Context, args RunArgs) error {
	_, _, results, err := w.analyze(ctx, args, func(fa FunctionAnalysis, _ []m.SourceFile) (m.Result, error) {
		state, pkg, err := w.assembler.Inspect(args.OutRoot, fa.Function.Name)
		if err != nil {
			return m.Result{}, err
		}

		return m.Result{
			Function: fa.Function.Name,
			Package:  pkg.Dir(),
			State:    state,
			Calls:    len(fa.Deps.Calls),
			Globals:  len(fa.Deps.Globals),
			Statics:  len(fa.Deps.Statics),
		}, nil
	})
	if err != nil {
		return err
	}

	return w.ui.DisplayPlan(ctx, results)
}

// analyze is the shared scan-analyze loop; visit decides what happens per
// function.
func (w *Workflow) analyze(
	ctx context.Context,
	args RunArgs,
	visit func(FunctionAnalysis, []m.SourceFile) (m.Result, error),
) ([]m.SourceFile, []m.SourceFile, []m.Result, error) {
	headers, impls, err := w.scanner.Scan(args.ScanRoots)
	if err != nil {
		return nil, nil, nil, err
	}

	flags := args.ParserFlags(w.conv)
	seen := make(map[string]m.Path)

	var results []m.Result

	for _, impl := range impls {
		analysis, err := w.analyzer.AnalyzeFile(ctx, impl.Path, flags)
		if err != nil {
			slog.Warn("skipping unparseable file", "file", impl.Path, "error", err)
			continue
		}

		for _, fa := range analysis.Functions {
			if prev, dup := seen[fa.Function.Name]; dup {
				slog.Warn("duplicate function name, packages collide",
					"function", fa.Function.Name,
					"file", impl.Path,
					"previous", prev,
				)
			}

			seen[fa.Function.Name] = impl.Path

			result, err := visit(fa, headers)
			if err != nil {
				return nil, nil, nil, err
			}

			logResult(result)
			results = append(results, result)
		}
	}

	return headers, impls, results, nil
}

func logResult(result m.Result) {
	switch result.Outcome {
	case m.OutcomeGenerated:
		slog.Info("generated package", "function", result.Function, "package", result.Package)
	case m.OutcomeSkipped:
		slog.Info("skipped package, src/ not empty", "function", result.Function, "package", result.Package)
	default:
		slog.Debug("inspected package", "function", result.Function, "state", result.State)
	}
}
