package models

// Product is one catalogue entry extracted from a product thumbnail.
type Product struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Rating       int     `json:"rating"`
	NumOfReviews int     `json:"num_of_reviews"`
}

// Category pairs a catalogue page with the file its products are written to
type Category struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Output string `json:"output"`
}
