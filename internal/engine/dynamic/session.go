package dynamic

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/chromedp"
	"github.com/law-makers/shopcrawl/internal/engine"
	"github.com/law-makers/shopcrawl/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Session is one browser tab. It implements engine.Session.
type Session struct {
	ctx     context.Context
	cancels []context.CancelFunc
	metrics *metrics.Metrics

	mu     sync.Mutex
	closed bool
}

// Navigate loads url and waits for the body to be ready.
func (s *Session) Navigate(url string) error {
	start := time.Now()

	err := chromedp.Run(s.ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return engine.NewInteractionError("navigation failed", err).WithDetail("url", url)
	}

	s.metrics.ObserveFetch("interactive", time.Since(start))
	log.Debug().Str("url", url).Dur("elapsed", time.Since(start)).Msg("Navigated")

	return nil
}

// FindByClass returns the first element carrying class. A page without such
// an element yields an interaction error.
func (s *Session) FindByClass(class string) (engine.Element, error) {
	var nodes []*cdp.Node

	err := chromedp.Run(s.ctx,
		chromedp.Nodes("."+class, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)),
	)
	if err != nil {
		return nil, engine.NewInteractionError("element lookup failed", err).WithDetail("class", class)
	}
	if len(nodes) == 0 {
		return nil, engine.NewInteractionError("element not found", nil).WithDetail("class", class)
	}

	return &element{session: s, node: nodes[0]}, nil
}

// PageSource returns the serialized DOM as it is now, including content
// added by scripts.
func (s *Session) PageSource() (string, error) {
	var html string
	if err := chromedp.Run(s.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", engine.NewInteractionError("failed to read page source", err)
	}
	return html, nil
}

// Close shuts the tab and the browser process. Safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for i := len(s.cancels) - 1; i >= 0; i-- {
		s.cancels[i]()
	}

	log.Debug().Msg("Browser session closed")
	return nil
}

type element struct {
	session *Session
	node    *cdp.Node
}

// Attribute reads name from the live DOM. Missing attributes read as "".
func (e *element) Attribute(name string) (string, error) {
	var attrs []string

	err := chromedp.Run(e.session.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		attrs, err = dom.GetAttributes(e.node.NodeID).Do(ctx)
		return err
	}))
	if err != nil {
		return "", engine.NewInteractionError("failed to read attribute", err).WithDetail("attribute", name)
	}

	// attrs is a flat list of name, value pairs
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i] == name {
			return attrs[i+1], nil
		}
	}
	return "", nil
}

func (e *element) Click() error {
	if err := chromedp.Run(e.session.ctx, chromedp.MouseClickNode(e.node)); err != nil {
		return engine.NewInteractionError("click failed", err)
	}
	return nil
}
