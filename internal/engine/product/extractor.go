package product

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/law-makers/shopcrawl/internal/engine"
	"github.com/law-makers/shopcrawl/pkg/models"
	"golang.org/x/net/html"
)

// Selectors for the webscraper.io e-commerce markup
const (
	FragmentSelector    = ".thumbnail"
	titleSelector       = "a"
	descriptionSelector = ".description"
	priceSelector       = ".price"
	starSelector        = "span.ws-icon.ws-icon-star"
	reviewCountSelector = ".review-count"
)

const (
	currencySymbol = "$"
	nbsp           = "\u00a0"
	// descriptions on the demo site are sometimes entity-encoded twice
	maxUnescapePasses = 4
)

// Extract turns one product fragment into a record. It fails if any of the five
// sub-elements is missing or a numeric field does not parse.
func Extract(fragment engine.Node) (models.Product, error) {
	title, err := extractTitle(fragment)
	if err != nil {
		return models.Product{}, err
	}

	description, err := extractDescription(fragment)
	if err != nil {
		return models.Product{}, err
	}

	price, err := extractPrice(fragment)
	if err != nil {
		return models.Product{}, err
	}

	reviews, err := extractReviewCount(fragment)
	if err != nil {
		return models.Product{}, err
	}

	return models.Product{
		Title:        title,
		Description:  description,
		Price:        price,
		Rating:       len(fragment.Select(starSelector)),
		NumOfReviews: reviews,
	}, nil
}

func extractTitle(fragment engine.Node) (string, error) {
	anchor, err := first(fragment, titleSelector)
	if err != nil {
		return "", err
	}
	title, ok := anchor.Attr("title")
	if !ok || title == "" {
		return "", engine.NewExtractionError("title anchor has no title attribute", nil)
	}
	return title, nil
}

func extractDescription(fragment engine.Node) (string, error) {
	block, err := first(fragment, descriptionSelector)
	if err != nil {
		return "", err
	}
	inner, err := block.InnerHTML()
	if err != nil {
		return "", engine.NewExtractionError("failed to render description", err)
	}
	return NormalizeDescription(inner), nil
}

// NormalizeDescription decodes HTML entities until the text is stable and turns
// non-breaking spaces into plain spaces.
func NormalizeDescription(markup string) string {
	text := markup
	for i := 0; i < maxUnescapePasses && strings.Contains(text, "&"); i++ {
		decoded := html.UnescapeString(text)
		if decoded == text {
			break
		}
		text = decoded
	}
	return strings.ReplaceAll(text, nbsp, " ")
}

func extractPrice(fragment engine.Node) (float64, error) {
	block, err := first(fragment, priceSelector)
	if err != nil {
		return 0, err
	}
	return ParsePrice(block.Text())
}

// ParsePrice parses a currency-prefixed price such as "$399.99"
func ParsePrice(text string) (float64, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(text, currencySymbol, ""))
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, engine.NewExtractionError(fmt.Sprintf("price %q is not a number", text), err)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, engine.NewExtractionError(fmt.Sprintf("price %q is not a finite number", text), nil)
	}
	return price, nil
}

func extractReviewCount(fragment engine.Node) (int, error) {
	block, err := first(fragment, reviewCountSelector)
	if err != nil {
		return 0, err
	}
	return ParseReviewCount(block.Text())
}

// ParseReviewCount reads the leading integer of a string such as "8 reviews"
func ParseReviewCount(text string) (int, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, engine.NewExtractionError("review count is empty", nil)
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, engine.NewExtractionError(fmt.Sprintf("review count %q has no leading number", text), err)
	}
	return count, nil
}

func first(fragment engine.Node, selector string) (engine.Node, error) {
	nodes := fragment.Select(selector)
	if len(nodes) == 0 {
		return nil, engine.NewExtractionError(fmt.Sprintf("missing %s element", selector), nil).
			WithDetail("selector", selector)
	}
	return nodes[0], nil
}
