package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/cisolate/cisolate/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayRun prints the generation outcome table.
func (s *SimpleUI) DisplayRun(ctx context.Context, results []m.Result) error {
	if err := ctx.Err(); err != nil {
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

	s.printf("\n%s", renderResultTable(results, outcomeColumn, fmt.Sprintf("%d generated, %d skipped", generated, skipped)))

	return nil
}

// DisplayPlan prints the dry-run analysis table.
func (s *SimpleUI) DisplayPlan(ctx context.Context, results []m.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderResultTable(results, stateColumn, fmt.Sprintf("%d functions", len(results))))

	return nil
}

type lastColumn int

const (
	outcomeColumn lastColumn = iota
	stateColumn
)

func renderResultTable(results []m.Result, last lastColumn, footer string) string {
	var tableBuffer bytes.Buffer

	header := []string{"Function", "Package", "Calls", "Globals", "Statics", "Outcome"}
	if last == stateColumn {
		header[5] = "State"
	}

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, r := range results {
		lastCell := string(r.Outcome)
		if last == stateColumn {
			lastCell = string(r.State)
		}

		table.Append([]string{
			r.Function,
			string(r.Package),
			fmt.Sprintf("%d", r.Calls),
			fmt.Sprintf("%d", r.Globals),
			fmt.Sprintf("%d", r.Statics),
			lastCell,
		})
	}

	table.SetFooter([]string{footer, "", "", "", "", ""})
	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
