package hybrid

import (
	"context"
	"errors"
	"time"

	"github.com/law-makers/shopcrawl/internal/engine"
	"github.com/law-makers/shopcrawl/internal/engine/dom"
	"github.com/law-makers/shopcrawl/internal/engine/product"
	"github.com/law-makers/shopcrawl/internal/metrics"
	"github.com/law-makers/shopcrawl/pkg/models"
	"github.com/rs/zerolog/log"
)

const (
	DefaultLoadMoreClass = "ecomerce-items-scroll-more"
	DefaultCookieClass   = "acceptCookies"
	DefaultPollInterval  = time.Second
)

// CompletionPredicate reports whether the load-more control is exhausted.
// It is evaluated after every click and poll interval.
type CompletionPredicate func(control engine.Element) (bool, error)

// StyleAttributeSet treats the control as exhausted once the page gave it an
// inline style, which is how the catalogue hides it.
func StyleAttributeSet(control engine.Element) (bool, error) {
	style, err := control.Attribute("style")
	if err != nil {
		return false, err
	}
	return style != "", nil
}

// Sleeper waits between a click and the next completion check
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to Sleeper
type SleeperFunc func(ctx context.Context, d time.Duration) error

func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

type clockSleeper struct{}

func (clockSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Options configures a Loader. Zero values fall back to the defaults.
type Options struct {
	LoadMoreClass string
	CookieClass   string
	PollInterval  time.Duration

	// MaxClicks bounds the click loop. Zero means unbounded.
	MaxClicks int

	Completion CompletionPredicate
	Sleeper    Sleeper
}

func (o Options) withDefaults() Options {
	if o.LoadMoreClass == "" {
		o.LoadMoreClass = DefaultLoadMoreClass
	}
	if o.CookieClass == "" {
		o.CookieClass = DefaultCookieClass
	}
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.Completion == nil {
		o.Completion = StyleAttributeSet
	}
	if o.Sleeper == nil {
		o.Sleeper = clockSleeper{}
	}
	return o
}

// Loader fetches a category page and returns every product on it, expanding
// load-more pagination in a browser when the static page asks for it.
type Loader struct {
	fetcher engine.Fetcher
	browser engine.Browser
	opts    Options
	metrics *metrics.Metrics
}

// NewLoader creates a Loader. The browser is only used for interactive pages.
func NewLoader(f engine.Fetcher, b engine.Browser, opts Options, m *metrics.Metrics) *Loader {
	return &Loader{
		fetcher: f,
		browser: b,
		opts:    opts.withDefaults(),
		metrics: m,
	}
}

// LoadAllProducts returns the products of url in page order
func (l *Loader) LoadAllProducts(ctx context.Context, url string) ([]models.Product, error) {
	doc, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	strategy := DetermineStrategy(doc, "."+l.opts.LoadMoreClass)

	log.Debug().
		Str("url", url).
		Str("strategy", strategy.String()).
		Msg("Pagination strategy determined")

	if strategy == StrategyStatic {
		return product.Collect(doc)
	}

	source, err := l.expand(ctx, url)
	if err != nil {
		return nil, err
	}

	rendered, err := dom.ParseString(source)
	if err != nil {
		return nil, engine.NewInteractionError("failed to parse rendered page", err).WithDetail("url", url)
	}

	return product.Collect(rendered)
}

// expand opens a session, clicks the load-more control until the completion
// predicate holds and returns the final page source.
func (l *Loader) expand(ctx context.Context, url string) (string, error) {
	session, err := l.browser.Open(ctx)
	if err != nil {
		return "", interactionError("failed to open browser session", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			log.Warn().Err(cerr).Str("url", url).Msg("Failed to close browser session")
		}
	}()

	if err := session.Navigate(url); err != nil {
		return "", interactionError("navigation failed", err)
	}

	control, err := session.FindByClass(l.opts.LoadMoreClass)
	if err != nil {
		return "", interactionError("load more control not found", err).WithDetail("url", url)
	}

	l.acceptCookies(session, url)

	start := time.Now()
	clicks, err := l.clickUntilComplete(ctx, control)
	if err != nil {
		return "", err
	}

	log.Info().
		Str("url", url).
		Int("clicks", clicks).
		Dur("elapsed", time.Since(start)).
		Msg("Load more exhausted")

	source, err := session.PageSource()
	if err != nil {
		return "", interactionError("failed to read page source", err)
	}

	return source, nil
}

// acceptCookies dismisses the consent banner. The banner may be missing or
// already gone, so failures only warn.
func (l *Loader) acceptCookies(session engine.Session, url string) {
	banner, err := session.FindByClass(l.opts.CookieClass)
	if err == nil {
		err = banner.Click()
	}
	if err != nil {
		l.metrics.IncCookieBannerMiss()
		log.Warn().Err(err).Str("url", url).Msg("Cookie banner not dismissed")
	}
}

// clickUntilComplete always clicks at least once before checking completion.
func (l *Loader) clickUntilComplete(ctx context.Context, control engine.Element) (int, error) {
	clicks := 0

	for {
		if err := ctx.Err(); err != nil {
			return clicks, engine.NewInteractionError("load more aborted", err).WithDetail("clicks", clicks)
		}
		if l.opts.MaxClicks > 0 && clicks >= l.opts.MaxClicks {
			return clicks, engine.NewInteractionError("load more control still active after click limit", nil).
				WithDetail("clicks", clicks)
		}

		if err := control.Click(); err != nil {
			return clicks, interactionError("load more click failed", err).WithDetail("clicks", clicks)
		}
		clicks++
		l.metrics.IncClicks()

		if err := l.opts.Sleeper.Sleep(ctx, l.opts.PollInterval); err != nil {
			return clicks, engine.NewInteractionError("load more aborted", err).WithDetail("clicks", clicks)
		}

		done, err := l.opts.Completion(control)
		if err != nil {
			return clicks, interactionError("completion check failed", err).WithDetail("clicks", clicks)
		}
		if done {
			return clicks, nil
		}

		log.Debug().Int("clicks", clicks).Msg("Load more control still active")
	}
}

// interactionError keeps engine errors raised by the session as they are and
// wraps anything else.
func interactionError(msg string, err error) *engine.EngineError {
	var engineErr *engine.EngineError
	if errors.As(err, &engineErr) && engineErr.Code == engine.ErrCodeInteraction {
		return engineErr
	}
	return engine.NewInteractionError(msg, err)
}
