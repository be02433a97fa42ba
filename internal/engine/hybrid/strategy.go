package hybrid

import "github.com/law-makers/shopcrawl/internal/engine"

// Strategy is the pagination mode of a category page
type Strategy int

const (
	// StrategyStatic means the first response already holds every product
	StrategyStatic Strategy = iota

	// StrategyInteractive means products are appended by a load-more control
	// and a browser has to click it until it disappears
	StrategyInteractive
)

// String returns the string representation of the strategy
func (s Strategy) String() string {
	switch s {
	case StrategyStatic:
		return "Static"
	case StrategyInteractive:
		return "Interactive"
	default:
		return "Unknown"
	}
}

// DetermineStrategy inspects a statically fetched page. Any element matching
// markerSelector switches the page to interactive loading.
func DetermineStrategy(doc engine.Document, markerSelector string) Strategy {
	if len(doc.Select(markerSelector)) > 0 {
		return StrategyInteractive
	}
	return StrategyStatic
}
