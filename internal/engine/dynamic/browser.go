package dynamic

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/law-makers/shopcrawl/internal/engine"
	"github.com/law-makers/shopcrawl/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Options configures the browser launched for each session.
type Options struct {
	Headless   bool
	ChromePath string
	UserAgent  string
	// Timeout bounds the lifetime of one session. Zero means no bound.
	Timeout time.Duration
}

// Browser implements engine.Browser on top of chromedp. Every Open starts a
// fresh browser process that is killed again when the session closes.
type Browser struct {
	opts    Options
	metrics *metrics.Metrics
}

// NewBrowser creates a Browser. m may be nil.
func NewBrowser(opts Options, m *metrics.Metrics) *Browser {
	return &Browser{opts: opts, metrics: m}
}

func (b *Browser) allocatorOptions() []chromedp.ExecAllocatorOption {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("window-size", "1920,1080"),
	}

	if path := ResolveChrome(b.opts.ChromePath); path != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(path)}, allocOpts...)
	}

	if b.opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	if b.opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(b.opts.UserAgent))
	}

	return allocOpts
}

// Open launches the browser and returns a session bound to a single tab.
// Cancelling ctx tears the browser down.
func (b *Browser) Open(ctx context.Context) (engine.Session, error) {
	start := time.Now()

	var cancels []context.CancelFunc
	if b.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.opts.Timeout)
		cancels = append(cancels, cancel)
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, b.allocatorOptions()...)
	cancels = append(cancels, allocCancel)

	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	cancels = append(cancels, tabCancel)

	s := &Session{ctx: tabCtx, cancels: cancels, metrics: b.metrics}

	// Run with no actions starts the browser process.
	if err := chromedp.Run(tabCtx); err != nil {
		s.Close()
		return nil, engine.NewInteractionError("failed to start browser", err)
	}

	log.Debug().Dur("elapsed", time.Since(start)).Bool("headless", b.opts.Headless).Msg("Browser session opened")

	return s, nil
}
