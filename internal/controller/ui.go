// Package controller provides output adapters for displaying generation
// results.
package controller

import (
	"context"

	m "github.com/cisolate/cisolate/internal/model"
)

// UI defines the interface for reporting per-function outcomes.
// Implementations can use different output methods; the workflow only
// hands over results.
type UI interface {
	// DisplayRun renders the outcome of a generation run.
	DisplayRun(ctx context.Context, results []m.Result) error

	// DisplayPlan renders a dry-run analysis: discovered functions, their
	// dependency counts and the package state a run would encounter.
	DisplayPlan(ctx context.Context, results []m.Result) error
}
