package product

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/law-makers/shopcrawl/internal/engine"
	"github.com/law-makers/shopcrawl/internal/engine/dom"
	"github.com/law-makers/shopcrawl/pkg/models"
)

func thumb(title, price, reviews string, stars int) string {
	return `<div class="col"><div class="thumbnail">
		<h4 class="price">` + price + `</h4>
		<a class="title" title="` + title + `">` + title + `</a>
		<p class="description">` + title + ` description</p>
		<p class="review-count">` + reviews + `</p>` +
		strings.Repeat(`<span class="ws-icon ws-icon-star"></span>`, stars) +
		`</div></div>`
}

func TestCollect_PreservesDocumentOrder(t *testing.T) {
	doc, err := dom.ParseString(`<html><body><div class="row">` +
		thumb("Lenovo", "$321.94", "7 reviews", 1) +
		thumb("Asus", "$101.99", "3 reviews", 4) +
		thumb("Dell", "$1144.40", "12 reviews", 5) +
		`</div></body></html>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	got, err := Collect(doc)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	want := []models.Product{
		{Title: "Lenovo", Description: "Lenovo description", Price: 321.94, Rating: 1, NumOfReviews: 7},
		{Title: "Asus", Description: "Asus description", Price: 101.99, Rating: 4, NumOfReviews: 3},
		{Title: "Dell", Description: "Dell description", Price: 1144.40, Rating: 5, NumOfReviews: 12},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Collect mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_EmptyPage(t *testing.T) {
	doc, err := dom.ParseString(`<html><body><p>No products</p></body></html>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	got, err := Collect(doc)
	if err != nil {
		t.Fatalf("Expected no error for empty page, got %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestCollect_MalformedFragmentFailsWholePage(t *testing.T) {
	broken := `<div class="thumbnail"><a title="Broken"></a><p class="description">d</p><p class="review-count">1 review</p></div>`
	doc, err := dom.ParseString(`<html><body>` +
		thumb("Good", "$1.00", "1 review", 1) +
		broken +
		thumb("After", "$2.00", "2 reviews", 2) +
		`</body></html>`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	got, err := Collect(doc)
	if err == nil {
		t.Fatal("Expected extraction error, got nil")
	}
	if !errors.Is(err, engine.ErrExtraction) {
		t.Errorf("Expected ErrExtraction, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected no records, got %d", len(got))
	}

	var engineErr *engine.EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("Expected *engine.EngineError, got %T", err)
	}
	if engineErr.Details["fragment"] != 1 {
		t.Errorf("Expected failing fragment index 1, got %v", engineErr.Details["fragment"])
	}
}
