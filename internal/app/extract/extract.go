// Package extract pre-fills the camp form from a web page. A Fetcher turns
// the URL into page text, an Extractor turns the text into a PartialCamp,
// and Merge folds the result into the form the admin is editing.
package extract

import (
	"context"
)

// PartialCamp holds whatever the extractor could find. Every field is
// optional; nil means "not found". Dates are free-form strings as they
// appeared on the page.
type PartialCamp struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	StartDate   *string  `json:"startDate,omitempty"`
	EndDate     *string  `json:"endDate,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Activities  []string `json:"activities,omitempty"`
}

// Empty reports whether no field was found.
func (p PartialCamp) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Location == nil &&
		p.StartDate == nil && p.EndDate == nil && p.Price == nil &&
		p.ImageURL == nil && len(p.Activities) == 0
}

// Extractor reads camp details from the page at url.
type Extractor interface {
	Extract(ctx context.Context, url string) (PartialCamp, error)
}

// Page is the readable content of a fetched URL.
type Page struct {
	URL   string
	Title string
	Text  string
	// Image is the page's og:image, when present.
	Image string
}

// Fetcher loads a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}
