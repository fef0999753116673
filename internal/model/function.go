package model

import (
	"fmt"
	"strings"
)

// Param is a single function parameter as it appears in the source.
type Param struct {
	Type string
	Name string
}

// FunctionDefinition describes one function defined (not merely declared) at
// file scope in an implementation file.
type FunctionDefinition struct {
	Name       string
	ReturnType string
	Params     []Param
	Variadic   bool
	// Text is the verbatim source text of the whole definition, signature
	// and body included.
	Text string
	File Path
	Line int
}

// Prototype renders the declaration form of the function, e.g.
// "int add(int a, int b);". A function without parameters renders "(void)".
func (f FunctionDefinition) Prototype() string {
	params := make([]string, 0, len(f.Params)+1)
	for _, p := range f.Params {
		if p.Name == "" {
			params = append(params, p.Type)
			continue
		}

		params = append(params, fmt.Sprintf("%s %s", p.Type, p.Name))
	}

	if f.Variadic {
		params = append(params, "...")
	}

	paramStr := "void"
	if len(params) > 0 {
		paramStr = strings.Join(params, ", ")
	}

	return fmt.Sprintf("%s %s(%s);", f.ReturnType, f.Name, paramStr)
}
