// internal/engine/batch/scraper.go
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/law-makers/shopcrawl/internal/engine"
	"github.com/law-makers/shopcrawl/internal/metrics"
	"github.com/law-makers/shopcrawl/internal/runctx"
	"github.com/law-makers/shopcrawl/pkg/models"
	"github.com/rs/zerolog/log"
)

// CategoryRunner processes a single category end to end
type CategoryRunner interface {
	Run(ctx context.Context, category models.Category) ([]models.Product, error)
}

// Report is the outcome of one category
type Report struct {
	Category models.Category
	Products int
	Duration time.Duration
	Err      error
}

// Options configures a Runner
type Options struct {
	// FailFast stops the run at the first failing category
	FailFast bool

	// Observer is called after every category, successful or not
	Observer func(Report)
}

// Runner processes categories one after another
type Runner struct {
	pipeline CategoryRunner
	opts     Options
	metrics  *metrics.Metrics
}

// New creates a Runner. m may be nil.
func New(pipeline CategoryRunner, opts Options, m *metrics.Metrics) *Runner {
	return &Runner{
		pipeline: pipeline,
		opts:     opts,
		metrics:  m,
	}
}

// RunAll processes categories in order. A failing category does not stop the
// others unless FailFast is set. The returned error joins every failure and
// is nil only when all categories succeeded.
func (r *Runner) RunAll(ctx context.Context, categories []models.Category) ([]Report, error) {
	reports := make([]Report, 0, len(categories))
	var errs []error

	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("run aborted before category %s: %w", category.Name, err))
			break
		}

		start := time.Now()
		products, err := r.pipeline.Run(ctx, category)

		report := Report{
			Category: category,
			Products: len(products),
			Duration: time.Since(start),
		}

		if err != nil {
			report.Err = fmt.Errorf("category %s: %w", category.Name, err)
			errs = append(errs, report.Err)
			r.metrics.IncFailure(category.Name, string(engine.CodeOf(err)))

			log.Error().
				Err(err).
				Str("run_id", runctx.From(ctx).ID).
				Str("category", category.Name).
				Str("url", category.URL).
				Msg("Category failed")
		}

		reports = append(reports, report)
		if r.opts.Observer != nil {
			r.opts.Observer(report)
		}

		if err != nil && r.opts.FailFast {
			break
		}
	}

	return reports, errors.Join(errs...)
}
