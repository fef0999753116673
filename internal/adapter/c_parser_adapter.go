// Package adapter contains infrastructure adapters for the cisolate CLI.
package adapter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
)

// CParserAdapter encapsulates C parsing so the domain layer can focus on
// dependency classification while delegating syntax-tree construction to an
// infrastructure component. Any conforming parser can back this port; the
// domain only consumes the returned tree through node introspection.
type CParserAdapter interface {
	// Parse builds a syntax tree for the provided filename/source pair.
	// ExtraFlags carries pass-through parser options from the invocation
	// boundary; implementations may ignore flags they do not understand.
	Parse(ctx context.Context, filename string, src []byte, extraFlags []string) (*sitter.Tree, error)
}

// TreeSitterCParserAdapter provides a concrete CParserAdapter backed by the
// tree-sitter C grammar. A single parser instance is shared across all files
// of a run; the workflow is strictly sequential so no locking is needed.
type TreeSitterCParserAdapter struct {
	parser *sitter.Parser
}

// NewTreeSitterCParserAdapter constructs a TreeSitterCParserAdapter with the
// C language loaded.
func NewTreeSitterCParserAdapter() *TreeSitterCParserAdapter {
	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())

	return &TreeSitterCParserAdapter{parser: parser}
}

// Parse builds a syntax tree for the provided source. Tree-sitter is
// tolerant: damaged input yields a tree with ERROR nodes rather than a nil
// tree, so callers decide how much of a broken file is still usable.
func (a *TreeSitterCParserAdapter) Parse(ctx context.Context, filename string, src []byte, _ []string) (*sitter.Tree, error) {
	tree, err := a.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return tree, nil
}
