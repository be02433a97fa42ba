package config

import (
	"fmt"

	urlutil "github.com/law-makers/shopcrawl/internal/utils/url"
	"github.com/law-makers/shopcrawl/pkg/models"
)

// category paths as listed by the site. The home page is relative, the
// others are rooted.
var categoryPaths = []struct {
	name, path, output string
}{
	{"home", "test-sites/e-commerce/more/", "home.csv"},
	{"computers", "/test-sites/e-commerce/more/computers", "computers.csv"},
	{"laptops", "/test-sites/e-commerce/more/computers/laptops", "laptops.csv"},
	{"tablets", "/test-sites/e-commerce/more/computers/tablets", "tablets.csv"},
	{"phones", "/test-sites/e-commerce/more/phones", "phones.csv"},
	{"touch-phones", "/test-sites/e-commerce/more/phones/touch", "touch.csv"},
}

// Categories returns the fixed category list resolved against baseURL, in
// processing order.
func Categories(baseURL string) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(categoryPaths))

	for _, c := range categoryPaths {
		resolved, err := urlutil.Join(baseURL, c.path)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", c.name, err)
		}
		categories = append(categories, models.Category{
			Name:   c.name,
			URL:    resolved,
			Output: c.output,
		})
	}

	return categories, nil
}
