package campfilter

import (
	"sort"

	"github.com/dalemusser/campanion/internal/domain/models"
)

// Locations returns the distinct non-empty locations, sorted.
func Locations(camps []models.Camp) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, c := range camps {
		if c.Location == "" {
			continue
		}
		if _, ok := seen[c.Location]; ok {
			continue
		}
		seen[c.Location] = struct{}{}
		out = append(out, c.Location)
	}
	sort.Strings(out)
	return out
}

// Bounds is the observed price span of a camp list.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PriceBounds returns the lowest and highest price. ok is false for an empty
// list.
func PriceBounds(camps []models.Camp) (b Bounds, ok bool) {
	for i, c := range camps {
		if i == 0 {
			b = Bounds{Min: c.Price, Max: c.Price}
			continue
		}
		if c.Price < b.Min {
			b.Min = c.Price
		}
		if c.Price > b.Max {
			b.Max = c.Price
		}
	}
	return b, len(camps) > 0
}
