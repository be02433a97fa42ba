package product

import (
	"errors"
	"testing"

	"github.com/law-makers/shopcrawl/internal/engine"
	"github.com/law-makers/shopcrawl/internal/engine/dom"
	"github.com/law-makers/shopcrawl/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const acerFragment = `<div class="thumbnail">
	<div class="caption">
		<h4 class="price float-end">$399.99</h4>
		<h4><a href="/product/1" class="title" title="Acer Aspire">Acer Aspire...</a></h4>
		<p class="description">A&amp;nbsp;laptop</p>
	</div>
	<div class="ratings">
		<p class="review-count float-end">8 reviews</p>
		<p data-rating="3">
			<span class="ws-icon ws-icon-star"></span>
			<span class="ws-icon ws-icon-star"></span>
			<span class="ws-icon ws-icon-star"></span>
		</p>
	</div>
</div>`

func fragment(t *testing.T, markup string) engine.Node {
	t.Helper()
	doc, err := dom.ParseString(markup)
	require.NoError(t, err)
	nodes := doc.Select(FragmentSelector)
	require.Len(t, nodes, 1)
	return nodes[0]
}

func TestExtract_AcerAspire(t *testing.T) {
	got, err := Extract(fragment(t, acerFragment))
	require.NoError(t, err)

	assert.Equal(t, models.Product{
		Title:        "Acer Aspire",
		Description:  "A laptop",
		Price:        399.99,
		Rating:       3,
		NumOfReviews: 8,
	}, got)
}

func TestExtract_Deterministic(t *testing.T) {
	node := fragment(t, acerFragment)

	first, err := Extract(node)
	require.NoError(t, err)
	second, err := Extract(node)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtract_NoUpperBoundOnStars(t *testing.T) {
	markup := `<div class="thumbnail">
		<span class="price">$1</span><a title="Many"></a><p class="description">d</p>
		<p class="review-count">0 reviews</p>` +
		`<span class="ws-icon ws-icon-star"></span><span class="ws-icon ws-icon-star"></span>` +
		`<span class="ws-icon ws-icon-star"></span><span class="ws-icon ws-icon-star"></span>` +
		`<span class="ws-icon ws-icon-star"></span><span class="ws-icon ws-icon-star"></span>` +
		`<span class="ws-icon ws-icon-star-empty"></span></div>`

	got, err := Extract(fragment(t, markup))
	require.NoError(t, err)
	assert.Equal(t, 6, got.Rating)
	assert.Equal(t, 1.0, got.Price)
	assert.Equal(t, 0, got.NumOfReviews)
}

func TestExtract_DescriptionKeepsNestedMarkup(t *testing.T) {
	markup := `<div class="thumbnail"><span class="price">$10.50</span><a title="T"></a>
		<p class="description">Fast <b>SSD</b>,&nbsp;16GB</p><p class="review-count">2 reviews</p></div>`

	got, err := Extract(fragment(t, markup))
	require.NoError(t, err)
	assert.Equal(t, "Fast <b>SSD</b>, 16GB", got.Description)
}

func TestExtract_Failures(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{
			name:   "missing price block",
			markup: `<div class="thumbnail"><a title="T"></a><p class="description">d</p><p class="review-count">1 review</p></div>`,
		},
		{
			name:   "missing title anchor",
			markup: `<div class="thumbnail"><span class="price">$1</span><p class="description">d</p><p class="review-count">1 review</p></div>`,
		},
		{
			name:   "anchor without title",
			markup: `<div class="thumbnail"><a href="/x"></a><span class="price">$1</span><p class="description">d</p><p class="review-count">1 review</p></div>`,
		},
		{
			name:   "missing description",
			markup: `<div class="thumbnail"><a title="T"></a><span class="price">$1</span><p class="review-count">1 review</p></div>`,
		},
		{
			name:   "non numeric price",
			markup: `<div class="thumbnail"><a title="T"></a><span class="price">$call us</span><p class="description">d</p><p class="review-count">1 review</p></div>`,
		},
		{
			name:   "missing review count",
			markup: `<div class="thumbnail"><a title="T"></a><span class="price">$1</span><p class="description">d</p></div>`,
		},
		{
			name:   "review count without number",
			markup: `<div class="thumbnail"><a title="T"></a><span class="price">$1</span><p class="description">d</p><p class="review-count">no reviews</p></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(fragment(t, tt.markup))
			require.Error(t, err)
			assert.True(t, errors.Is(err, engine.ErrExtraction), "expected extraction error, got %v", err)
			assert.Equal(t, models.Product{}, got)
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "$399.99", want: 399.99},
		{input: " $1178.99 ", want: 1178.99},
		{input: "$24", want: 24},
		{input: "$", wantErr: true},
		{input: "$NaN", wantErr: true},
		{input: "$Inf", wantErr: true},
		{input: "12,00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseReviewCount(t *testing.T) {
	got, err := ParseReviewCount("  14 reviews\n")
	require.NoError(t, err)
	assert.Equal(t, 14, got)

	_, err = ParseReviewCount("   ")
	assert.Error(t, err)
}

func TestNormalizeDescription(t *testing.T) {
	assert.Equal(t, "A laptop", NormalizeDescription("A&amp;nbsp;laptop"))
	assert.Equal(t, "A laptop", NormalizeDescription("A\u00a0laptop"))
	assert.Equal(t, "Tom & Jerry", NormalizeDescription("Tom &amp; Jerry"))
	assert.Equal(t, "plain", NormalizeDescription("plain"))
}
