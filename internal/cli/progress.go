package cli

import (
	"fmt"
	"io"

	"github.com/law-makers/shopcrawl/internal/engine/batch"
	"github.com/schollz/progressbar/v3"
)

// progress advances one step per finished category. A disabled progress
// is a no-op.
type progress struct {
	bar *progressbar.ProgressBar
}

func newProgress(w io.Writer, total int, enabled bool) *progress {
	if !enabled {
		return &progress{}
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("scraping"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
	return &progress{bar: bar}
}

// Observe is a batch.Runner observer
func (p *progress) Observe(r batch.Report) {
	if p.bar == nil {
		return
	}
	p.bar.Describe(fmt.Sprintf("%-12s", r.Category.Name))
	_ = p.bar.Add(1)
}

func (p *progress) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}
