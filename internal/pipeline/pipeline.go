package pipeline

import (
	"context"
	"path/filepath"
	"time"

	"github.com/law-makers/shopcrawl/internal/metrics"
	"github.com/law-makers/shopcrawl/internal/runctx"
	"github.com/law-makers/shopcrawl/internal/utils/output"
	"github.com/law-makers/shopcrawl/pkg/models"
	"github.com/rs/zerolog/log"
)

// ProductLoader returns every product listed at a category URL
type ProductLoader interface {
	LoadAllProducts(ctx context.Context, url string) ([]models.Product, error)
}

// WriteFunc persists the products of one category at path
type WriteFunc func(path string, products []models.Product) error

// Pipeline loads a category and writes it to its output file.
type Pipeline struct {
	loader    ProductLoader
	outputDir string
	write     WriteFunc
	metrics   *metrics.Metrics
}

// New creates a Pipeline writing CSV files into outputDir. m may be nil.
func New(loader ProductLoader, outputDir string, m *metrics.Metrics) *Pipeline {
	if outputDir == "" {
		outputDir = "."
	}
	return &Pipeline{
		loader:    loader,
		outputDir: outputDir,
		write:     output.WriteProductsCSV,
		metrics:   m,
	}
}

// WithWriter replaces the CSV sink
func (p *Pipeline) WithWriter(w WriteFunc) *Pipeline {
	p.write = w
	return p
}

// OutputPath returns the file a category is written to
func (p *Pipeline) OutputPath(category models.Category) string {
	return filepath.Join(p.outputDir, category.Output)
}

// Run loads category and writes it. Nothing is written when loading fails.
func (p *Pipeline) Run(ctx context.Context, category models.Category) ([]models.Product, error) {
	start := time.Now()
	runID := runctx.From(ctx).ID

	log.Info().
		Str("run_id", runID).
		Str("category", category.Name).
		Str("url", category.URL).
		Msg("Scraping category")

	products, err := p.loader.LoadAllProducts(ctx, category.URL)
	if err != nil {
		return nil, err
	}

	path := p.OutputPath(category)
	if err := p.write(path, products); err != nil {
		return nil, err
	}

	p.metrics.AddProducts(category.Name, len(products))

	log.Info().
		Str("run_id", runID).
		Str("category", category.Name).
		Int("products", len(products)).
		Str("path", path).
		Dur("elapsed", time.Since(start)).
		Msg("Category written")

	return products, nil
}
