package static

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/law-makers/shopcrawl/internal/engine"
	"github.com/law-makers/shopcrawl/internal/engine/dom"
	"github.com/law-makers/shopcrawl/internal/metrics"
	"github.com/law-makers/shopcrawl/internal/ratelimit"
	"github.com/rs/zerolog/log"
)

// Fetcher implements engine.Fetcher for server-rendered pages.
// It uses a plain HTTP GET and goquery for parsing, no browser involved.
type Fetcher struct {
	client  *resty.Client
	limiter ratelimit.RateLimiter
	metrics *metrics.Metrics
}

// New creates a Fetcher on top of client. limiter and m may be nil.
func New(client *http.Client, lim ratelimit.RateLimiter, m *metrics.Metrics, timeout time.Duration, ua string) *Fetcher {
	rc := resty.NewWithClient(client).
		SetHeader("User-Agent", ua).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.9")
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}

	return &Fetcher{
		client:  rc,
		limiter: lim,
		metrics: m,
	}
}

// WithHeaders adds headers to every request, overriding the defaults
func (f *Fetcher) WithHeaders(h map[string]string) *Fetcher {
	if len(h) > 0 {
		f.client.SetHeaders(h)
	}
	return f
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "StaticFetcher"
}

// Fetch implements engine.Fetcher
func (f *Fetcher) Fetch(ctx context.Context, url string) (engine.Document, error) {
	doc, err := f.FetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FetchDocument retrieves url and parses the body. Transport failures and
// non-2xx responses are reported as fetch errors.
func (f *Fetcher) FetchDocument(ctx context.Context, url string) (*dom.Document, error) {
	start := time.Now()

	log.Debug().
		Str("url", url).
		Str("fetcher", f.Name()).
		Msg("Starting fetch")

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, url); err != nil {
			return nil, engine.NewFetchError(url, "rate limiter wait aborted", err)
		}
	}

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, engine.NewFetchError(url, "failed to fetch URL", err)
	}
	if !resp.IsSuccess() {
		return nil, engine.NewFetchError(url, fmt.Sprintf("unexpected status %s", resp.Status()), nil).
			WithDetail("status", resp.StatusCode())
	}

	doc, err := dom.Parse(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, engine.NewFetchError(url, "failed to parse HTML", err)
	}

	elapsed := time.Since(start)
	f.metrics.ObserveFetch("static", elapsed)

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode()).
		Int("bytes", len(resp.Body())).
		Dur("elapsed", elapsed).
		Msg("Fetch completed")

	return doc, nil
}
