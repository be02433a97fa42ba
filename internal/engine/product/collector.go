package product

import (
	"github.com/law-makers/shopcrawl/internal/engine"
	"github.com/law-makers/shopcrawl/pkg/models"
	"github.com/rs/zerolog/log"
)

// Collect extracts every product fragment of doc in document order. A page without
// fragments yields an empty slice. The first malformed fragment fails the whole page.
func Collect(doc engine.Document) ([]models.Product, error) {
	fragments := doc.Select(FragmentSelector)
	products := make([]models.Product, 0, len(fragments))

	for i, fragment := range fragments {
		p, err := Extract(fragment)
		if err != nil {
			if engineErr, ok := err.(*engine.EngineError); ok {
				engineErr.WithDetail("fragment", i)
			}
			return nil, err
		}
		products = append(products, p)
	}

	log.Debug().
		Int("fragments", len(fragments)).
		Msg("Products collected")

	return products, nil
}
