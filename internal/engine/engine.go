package engine

import "context"

// Document is a parsed page that can be queried with CSS selectors
type Document interface {
	// Select returns every matching node in document order
	Select(selector string) []Node
}

// Node is one element of a parsed document
type Node interface {
	Document

	// Attr returns the attribute value and whether it is present
	Attr(name string) (string, bool)

	// Text returns the combined text of the node and its descendants
	Text() string

	// InnerHTML renders the node's children back to markup
	InnerHTML() (string, error)
}

// Fetcher performs a static GET and parses the response body
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Document, error)
}

// Browser starts interactive sessions. Every session it returns must be closed.
type Browser interface {
	Open(ctx context.Context) (Session, error)
}

// Session is one running browser tab
type Session interface {
	Navigate(url string) error

	// FindByClass returns the first element carrying the class, or an error if none exists
	FindByClass(class string) (Element, error)

	// PageSource returns the currently rendered markup of the whole page
	PageSource() (string, error)

	Close() error
}

// Element is a live handle to an element in a Session
type Element interface {
	// Attribute reads the current value; absent attributes read as ""
	Attribute(name string) (string, error)
	Click() error
}
