package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/law-makers/shopcrawl/internal/engine"
	"github.com/law-makers/shopcrawl/internal/engine/batch"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// printSummary renders one row per category and a total row
func printSummary(w io.Writer, reports []batch.Report, elapsed time.Duration) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Category", "File", "Products", "Time", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Products", Align: text.AlignRight},
		{Name: "Time", Align: text.AlignRight},
	})

	total, failed := 0, 0
	for _, r := range reports {
		status := "ok"
		if r.Err != nil {
			status = string(engine.CodeOf(r.Err))
			failed++
		} else {
			total += r.Products
		}
		t.AppendRow(table.Row{
			r.Category.Name,
			r.Category.Output,
			r.Products,
			r.Duration.Round(time.Millisecond),
			status,
		})
	}

	footer := "ok"
	if failed > 0 {
		footer = fmt.Sprintf("%d failed", failed)
	}
	t.AppendFooter(table.Row{"Total", "", total, elapsed.Round(time.Millisecond), footer})
	t.Render()
}
