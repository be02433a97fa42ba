// Package dom adapts goquery selections to the engine.Document and engine.Node capabilities.
package dom

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/shopcrawl/internal/engine"
)

// Document is a parsed HTML page
type Document struct {
	doc *goquery.Document
}

// Parse reads and parses an HTML document
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString parses markup held in memory, e.g. a browser's page source
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Select implements engine.Document
func (d *Document) Select(selector string) []engine.Node {
	return wrap(d.doc.Find(selector))
}

// Title returns the text of the page's <title>
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Node wraps a single goquery element
type Node struct {
	sel *goquery.Selection
}

// Select implements engine.Node
func (n *Node) Select(selector string) []engine.Node {
	return wrap(n.sel.Find(selector))
}

// Attr implements engine.Node
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// Text implements engine.Node
func (n *Node) Text() string {
	return n.sel.Text()
}

// InnerHTML implements engine.Node
func (n *Node) InnerHTML() (string, error) {
	return n.sel.Html()
}

func wrap(sel *goquery.Selection) []engine.Node {
	nodes := make([]engine.Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}
