package output

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/law-makers/shopcrawl/internal/engine"
	"github.com/law-makers/shopcrawl/pkg/models"
)

// Header is the first row of every product file
var Header = []string{"title", "description", "price", "rating", "num_of_reviews"}

// FormatPrice renders the shortest decimal that round-trips to p and always
// keeps a decimal point, so 1000 is written as "1000.0".
func FormatPrice(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// WriteProducts writes the header and one row per product to w
func WriteProducts(w io.Writer, products []models.Product) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return err
	}

	for _, p := range products {
		row := []string{
			p.Title,
			p.Description,
			FormatPrice(p.Price),
			strconv.Itoa(p.Rating),
			strconv.Itoa(p.NumOfReviews),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteProductsCSV creates (or truncates) path and writes products to it.
// A file left incomplete by a failed write is removed.
func WriteProductsCSV(path string, products []models.Product) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return engine.NewIOError(path, "failed to create output directory", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return engine.NewIOError(path, "failed to create output file", err)
	}

	if err := WriteProducts(file, products); err != nil {
		file.Close()
		os.Remove(path)
		return engine.NewIOError(path, "failed to write products", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(path)
		return engine.NewIOError(path, "failed to close output file", err)
	}

	return nil
}
