package domain

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/cisolate/cisolate/internal/adapter"
	m "github.com/cisolate/cisolate/internal/model"
)

// Analyzer parses implementation files and computes, per function defined in
// the file, the set of direct callees and the file-scope variables the
// function references.
type Analyzer struct {
	parser adapter.CParserAdapter
	fs     adapter.SourceFSAdapter
}

// FunctionAnalysis pairs one function definition with its dependency set.
type FunctionAnalysis struct {
	Function m.FunctionDefinition
	Deps     m.DependencySet
}

// FileAnalysis is the analysis result for one implementation file.
type FileAnalysis struct {
	File      m.Path
	Functions []FunctionAnalysis
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(parser adapter.CParserAdapter, fs adapter.SourceFSAdapter) *Analyzer {
	return &Analyzer{parser: parser, fs: fs}
}

// AnalyzeFile parses path and classifies the dependencies of every function
// defined directly in it. Files whose parse tree has no recognizable
// translation unit are rejected with an error; ERROR subtrees inside an
// otherwise valid file are walked past best-effort.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path m.Path, extraFlags []string) (*FileAnalysis, error) {
	src, err := a.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	tree, err := a.parser.Parse(ctx, string(path), src, extraFlags)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.Type() != "translation_unit" {
		return nil, fmt.Errorf("no translation unit in parse tree for %s", path)
	}

	symbols := collectFileScope(root, src, path)
	analysis := &FileAnalysis{File: path}

	forEachFileScopeItem(root, func(child *sitter.Node) {
		if child.Type() != "function_definition" {
			return
		}

		fn := extractFunction(child, src, path)
		if fn == nil {
			return
		}

		deps := analyzeBody(child, symbols, src)
		deps.Sort()

		analysis.Functions = append(analysis.Functions, FunctionAnalysis{
			Function: *fn,
			Deps:     deps,
		})
	})

	return analysis, nil
}

// forEachFileScopeItem visits every file-scope item, descending into
// preprocessor conditional blocks so guarded definitions are seen too.
// Preprocessing is not applied, so all branches of a conditional are visited.
func forEachFileScopeItem(node *sitter.Node, visit func(*sitter.Node)) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "preproc_ifdef", "preproc_if", "preproc_else", "preproc_elif", "preproc_elifdef":
			forEachFileScopeItem(child, visit)
		default:
			visit(child)
		}
	}
}

// fileScope is the translation-unit-level symbol table: every file-scope
// variable with its classification, plus the names of functions defined or
// declared in the file.
type fileScope struct {
	vars  map[string]m.VariableDependency
	funcs map[string]struct{}
}

func collectFileScope(root *sitter.Node, src []byte, path m.Path) *fileScope {
	symbols := &fileScope{
		vars:  make(map[string]m.VariableDependency),
		funcs: make(map[string]struct{}),
	}

	forEachFileScopeItem(root, func(child *sitter.Node) {
		switch child.Type() {
		case "function_definition":
			d := child.ChildByFieldName("declarator")
			for d != nil && d.Type() == "pointer_declarator" {
				d = d.ChildByFieldName("declarator")
			}

			if name := declaratorName(d, src); name != "" {
				symbols.funcs[name] = struct{}{}
			}
		case "declaration":
			collectDeclaration(child, src, path, symbols)
		}
	})

	return symbols
}

// collectDeclaration classifies one file-scope declaration node: function
// prototypes feed the function name set, everything else yields variable
// entries. A declaration can carry several comma-separated declarators.
func collectDeclaration(decl *sitter.Node, src []byte, path m.Path, symbols *fileScope) {
	isStatic := hasStorageClass(decl, src, "static")
	isConst := hasTypeQualifier(decl, src, "const")
	baseType := typeSpelling(decl, src)

	storage := m.StorageGlobal
	if isStatic {
		storage = m.StorageStatic
	}

	for i := 0; i < int(decl.NamedChildCount()); i++ {
		d := decl.NamedChild(i)

		if d.Type() == "init_declarator" {
			if inner := d.ChildByFieldName("declarator"); inner != nil {
				d = inner
			}
		}

		stars := 0
		for d != nil && d.Type() == "pointer_declarator" {
			stars++
			d = d.ChildByFieldName("declarator")
		}

		if d == nil {
			continue
		}

		declType := d.Type()
		if declType == "function_declarator" {
			if inner := d.ChildByFieldName("declarator"); inner != nil && inner.Type() == "parenthesized_declarator" {
				// Function pointer variable, e.g. int (*handler)(int).
				declType = "identifier"
				d = inner
			}
		}

		switch declType {
		case "function_declarator":
			// A plain prototype.
			if name := declaratorName(d, src); name != "" {
				symbols.funcs[name] = struct{}{}
			}
		case "identifier", "parenthesized_declarator":
			name := declaratorName(d, src)
			if name == "" {
				continue
			}

			symbols.vars[name] = m.VariableDependency{
				Name: name,
				Type: m.TypeDescriptor{
					Kind:  m.KindScalar,
					Elem:  scalarSpelling(baseType, isConst, stars),
					Count: m.CountUnknown,
					Const: isConst,
				},
				Storage:  storage,
				DeclText: decl.Content(src),
				File:     path,
				Line:     int(decl.StartPoint().Row) + 1,
			}
		case "array_declarator":
			name := declaratorName(d, src)
			if name == "" {
				continue
			}

			symbols.vars[name] = m.VariableDependency{
				Name: name,
				Type: m.TypeDescriptor{
					Kind:  m.KindArray,
					Elem:  elementSpelling(baseType, stars),
					Count: arrayCount(d, src),
					Const: isConst,
				},
				Storage:  storage,
				DeclText: decl.Content(src),
				File:     path,
				Line:     int(decl.StartPoint().Row) + 1,
			}
		}
	}
}

// extractFunction builds a FunctionDefinition from a function_definition
// node. Returns nil when the declarator shape is not recognizable.
func extractFunction(node *sitter.Node, src []byte, path m.Path) *m.FunctionDefinition {
	d := node.ChildByFieldName("declarator")

	stars := 0
	for d != nil && d.Type() == "pointer_declarator" {
		stars++
		d = d.ChildByFieldName("declarator")
	}

	if d == nil || d.Type() != "function_declarator" {
		return nil
	}

	name := declaratorName(d, src)
	if name == "" {
		return nil
	}

	params, variadic := extractParams(d.ChildByFieldName("parameters"), src)

	return &m.FunctionDefinition{
		Name:       name,
		ReturnType: returnSpelling(node, src, stars),
		Params:     params,
		Variadic:   variadic,
		Text:       node.Content(src),
		File:       path,
		Line:       int(node.StartPoint().Row) + 1,
	}
}

// extractParams reads a parameter_list node into the ordered parameter list.
// A lone "void" parameter means no parameters at all.
func extractParams(paramList *sitter.Node, src []byte) ([]m.Param, bool) {
	if paramList == nil {
		return nil, false
	}

	var params []m.Param

	variadic := false

	for i := 0; i < int(paramList.NamedChildCount()); i++ {
		child := paramList.NamedChild(i)

		switch child.Type() {
		case "parameter_declaration":
			text := child.Content(src)
			if text == "void" {
				continue
			}

			params = append(params, splitParameter(child, text, src))
		case "variadic_parameter":
			variadic = true
		}
	}

	return params, variadic
}

// splitParameter separates a parameter's type spelling from its name when the
// declarator is simple. Abstract or array-shaped parameters keep their
// verbatim text as the type.
func splitParameter(node *sitter.Node, text string, src []byte) m.Param {
	d := node.ChildByFieldName("declarator")
	for d != nil && d.Type() == "pointer_declarator" {
		d = d.ChildByFieldName("declarator")
	}

	if d == nil || d.Type() != "identifier" {
		return m.Param{Type: text}
	}

	start := int(d.StartByte() - node.StartByte())
	end := int(d.EndByte() - node.StartByte())

	return m.Param{
		Type: strings.TrimSpace(text[:start] + text[end:]),
		Name: text[start:end],
	}
}

// returnSpelling assembles the return type of a function definition from the
// qualifier and specifier children preceding the declarator, plus one star
// per pointer level on the declarator itself. Storage class specifiers do
// not belong to the type.
func returnSpelling(node *sitter.Node, src []byte, stars int) string {
	var parts []string

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "type_qualifier":
			parts = append(parts, child.Content(src))
		case "primitive_type", "type_identifier", "sized_type_specifier",
			"struct_specifier", "union_specifier", "enum_specifier":
			parts = append(parts, child.Content(src))
		case "function_declarator", "pointer_declarator", "compound_statement":
			return withStars(strings.Join(parts, " "), stars)
		}
	}

	return withStars(strings.Join(parts, " "), stars)
}

// declaratorName digs the declared identifier out of nested declarators.
func declaratorName(node *sitter.Node, src []byte) string {
	if node == nil {
		return ""
	}

	if node.Type() == "identifier" {
		return node.Content(src)
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		switch child.Type() {
		case "identifier":
			return child.Content(src)
		case "pointer_declarator", "array_declarator", "parenthesized_declarator", "function_declarator":
			if name := declaratorName(child, src); name != "" {
				return name
			}
		case "parameter_list":
			continue
		}
	}

	return ""
}

// arrayCount returns the compile-time element count of an array_declarator,
// or CountUnknown when the size is absent or not a literal.
func arrayCount(node *sitter.Node, src []byte) int {
	size := node.ChildByFieldName("size")
	if size == nil || size.Type() != "number_literal" {
		return m.CountUnknown
	}

	count := 0
	if _, err := fmt.Sscanf(size.Content(src), "%d", &count); err != nil {
		return m.CountUnknown
	}

	return count
}

func hasStorageClass(decl *sitter.Node, src []byte, want string) bool {
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		if child.Type() == "storage_class_specifier" && child.Content(src) == want {
			return true
		}
	}

	return false
}

func hasTypeQualifier(decl *sitter.Node, src []byte, want string) bool {
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)
		if child.Type() == "type_qualifier" && child.Content(src) == want {
			return true
		}
	}

	return false
}

// typeSpelling joins the type specifier children of a declaration, without
// qualifiers or storage classes.
func typeSpelling(decl *sitter.Node, src []byte) string {
	var parts []string

	for i := 0; i < int(decl.NamedChildCount()); i++ {
		child := decl.NamedChild(i)

		switch child.Type() {
		case "primitive_type", "type_identifier", "sized_type_specifier",
			"struct_specifier", "union_specifier", "enum_specifier":
			parts = append(parts, child.Content(src))
		}
	}

	return strings.Join(parts, " ")
}

// scalarSpelling is the full type spelling of a scalar variable, qualifiers
// included, as it appears in accessor signatures.
func scalarSpelling(baseType string, isConst bool, stars int) string {
	spelling := baseType
	if isConst {
		spelling = "const " + baseType
	}

	return withStars(spelling, stars)
}

// elementSpelling is the array element type without const; accessor
// templates prepend the qualifier themselves.
func elementSpelling(baseType string, stars int) string {
	return withStars(baseType, stars)
}

func withStars(spelling string, stars int) string {
	if stars == 0 {
		return spelling
	}

	return spelling + " " + strings.Repeat("*", stars)
}

// localScope tracks block-scope names during the body walk so shadowed
// file-scope variables are not misclassified as dependencies.
type localScope struct {
	names  map[string]struct{}
	parent *localScope
}

func newLocalScope(parent *localScope) *localScope {
	return &localScope{names: make(map[string]struct{}), parent: parent}
}

func (s *localScope) add(name string) {
	s.names[name] = struct{}{}
}

func (s *localScope) declared(name string) bool {
	for sc := s; sc != nil; sc = sc.parent {
		if _, ok := sc.names[name]; ok {
			return true
		}
	}

	return false
}

// analyzeBody walks the full function body and records call targets and
// file-scope variable references. Each dependency is recorded at most once.
func analyzeBody(fnNode *sitter.Node, symbols *fileScope, src []byte) m.DependencySet {
	body := fnNode.ChildByFieldName("body")
	if body == nil {
		return m.DependencySet{}
	}

	collector := &depCollector{
		src:     src,
		symbols: symbols,
		calls:   make(map[string]struct{}),
		globals: make(map[string]m.VariableDependency),
		statics: make(map[string]m.VariableDependency),
	}

	root := newLocalScope(nil)
	for _, name := range parameterNames(fnNode, src) {
		root.add(name)
	}

	collector.walk(body, root)

	deps := m.DependencySet{}
	for name := range collector.calls {
		deps.Calls = append(deps.Calls, name)
	}

	for _, v := range collector.globals {
		deps.Globals = append(deps.Globals, v)
	}

	for _, v := range collector.statics {
		deps.Statics = append(deps.Statics, v)
	}

	return deps
}

func parameterNames(fnNode *sitter.Node, src []byte) []string {
	d := fnNode.ChildByFieldName("declarator")
	for d != nil && d.Type() == "pointer_declarator" {
		d = d.ChildByFieldName("declarator")
	}

	if d == nil || d.Type() != "function_declarator" {
		return nil
	}

	paramList := d.ChildByFieldName("parameters")
	if paramList == nil {
		return nil
	}

	var names []string

	for i := 0; i < int(paramList.NamedChildCount()); i++ {
		child := paramList.NamedChild(i)
		if child.Type() != "parameter_declaration" {
			continue
		}

		if name := declaratorName(child.ChildByFieldName("declarator"), src); name != "" {
			names = append(names, name)
		}
	}

	return names
}

type depCollector struct {
	src     []byte
	symbols *fileScope
	calls   map[string]struct{}
	globals map[string]m.VariableDependency
	statics map[string]m.VariableDependency
}

func (c *depCollector) walk(node *sitter.Node, sc *localScope) {
	switch node.Type() {
	case "compound_statement", "for_statement":
		sc = newLocalScope(sc)

	case "declaration":
		c.addDeclaredNames(node, sc)

	case "call_expression":
		if fn := node.ChildByFieldName("function"); fn != nil && fn.Type() == "identifier" {
			c.recordCall(fn.Content(c.src), sc)

			if args := node.ChildByFieldName("arguments"); args != nil {
				c.walk(args, sc)
			}

			return
		}

	case "identifier":
		c.recordVariable(node.Content(c.src), sc)

		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		c.walk(node.NamedChild(i), sc)
	}
}

// addDeclaredNames registers every name a block-scope declaration introduces
// into the current scope before its children are walked, so the declared
// identifiers themselves resolve as locals.
func (c *depCollector) addDeclaredNames(decl *sitter.Node, sc *localScope) {
	for i := 0; i < int(decl.NamedChildCount()); i++ {
		d := decl.NamedChild(i)

		switch d.Type() {
		case "init_declarator":
			if inner := d.ChildByFieldName("declarator"); inner != nil {
				d = inner
			}
		case "identifier", "pointer_declarator", "array_declarator", "function_declarator", "parenthesized_declarator":
		default:
			continue
		}

		if name := declaratorName(d, c.src); name != "" {
			sc.add(name)
		}
	}
}

// recordCall classifies the callee of a direct call expression. Calls
// through variables, local or file-scope, are function-pointer calls: the
// variable is a dependency but no call target is recorded.
func (c *depCollector) recordCall(name string, sc *localScope) {
	if sc.declared(name) {
		return
	}

	if _, known := c.symbols.funcs[name]; known {
		c.calls[name] = struct{}{}
		return
	}

	if _, isVar := c.symbols.vars[name]; isVar {
		c.recordVariable(name, sc)
		return
	}

	// Not a variable in sight: treat as a call to a function declared in
	// an included header. Preprocessing is not applied, so function-like
	// macros land here too.
	c.calls[name] = struct{}{}
}

func (c *depCollector) recordVariable(name string, sc *localScope) {
	if sc.declared(name) {
		return
	}

	v, ok := c.symbols.vars[name]
	if !ok {
		return
	}

	if v.Storage == m.StorageStatic {
		c.statics[name] = v
	} else {
		c.globals[name] = v
	}
}
