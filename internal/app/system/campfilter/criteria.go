// Package campfilter narrows and orders an in-memory camp list.
//
// Every criterion is optional and they combine with AND. Filtering and
// sorting never mutate the input slice and never fail; malformed query input
// is rejected earlier by ParseCriteria.
package campfilter

import (
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/app/system/normalize"
)

// DateLayout is the wire format for date bounds.
const DateLayout = "2006-01-02"

// Query parameter names.
const (
	ParamSearch    = "q"
	ParamOrganizer = "organizer"
	ParamLocation  = "location"
	ParamPriceMin  = "price_min"
	ParamPriceMax  = "price_max"
	ParamFrom      = "from"
	ParamTo        = "to"
)

// PriceRange is an inclusive price window. Either bound may be nil.
type PriceRange struct {
	Min *float64
	Max *float64
}

// DateRange is an inclusive window of calendar days. Either bound may be nil.
// Days are taken in the location of the bound itself.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Active reports whether any bound is set.
func (d DateRange) Active() bool { return d.From != nil || d.To != nil }

// Criteria is the full set of user-supplied filters.
type Criteria struct {
	Search      string
	OrganizerID string
	Location    string
	Price       *PriceRange
	Dates       DateRange
}

// IsZero reports whether no criterion is set.
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.OrganizerID == "" && c.Location == "" &&
		(c.Price == nil || (c.Price.Min == nil && c.Price.Max == nil)) &&
		!c.Dates.Active()
}

// Values encodes the criteria as query parameters. Unset criteria are
// omitted.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	if c.Search != "" {
		v.Set(ParamSearch, c.Search)
	}
	if c.OrganizerID != "" {
		v.Set(ParamOrganizer, c.OrganizerID)
	}
	if c.Location != "" {
		v.Set(ParamLocation, c.Location)
	}
	if c.Price != nil {
		if c.Price.Min != nil {
			v.Set(ParamPriceMin, formatPrice(*c.Price.Min))
		}
		if c.Price.Max != nil {
			v.Set(ParamPriceMax, formatPrice(*c.Price.Max))
		}
	}
	if c.Dates.From != nil {
		v.Set(ParamFrom, c.Dates.From.Format(DateLayout))
	}
	if c.Dates.To != nil {
		v.Set(ParamTo, c.Dates.To.Format(DateLayout))
	}
	return v
}

// Key is a canonical encoding of the criteria. Two criteria with the same
// Key select the same camps. Paging uses it to notice filter changes.
func (c Criteria) Key() string {
	return c.Values().Encode()
}

// ParseCriteria reads criteria from query parameters. Dates are calendar days
// in loc (UTC when nil). Malformed numbers or dates, a min price above the
// max, or a from date after the to date yield a validation error naming each
// bad parameter.
func ParseCriteria(q url.Values, loc *time.Location) (Criteria, error) {
	if loc == nil {
		loc = time.UTC
	}
	var (
		c  Criteria
		ve apperr.ValidationError
	)
	// Search is a raw substring; surrounding spaces are part of it.
	c.Search = q.Get(ParamSearch)
	c.OrganizerID = normalize.OrganizerID(q.Get(ParamOrganizer))
	c.Location = normalize.QueryParam(q.Get(ParamLocation))

	lo, okLo := parsePrice(q.Get(ParamPriceMin), ParamPriceMin, &ve)
	hi, okHi := parsePrice(q.Get(ParamPriceMax), ParamPriceMax, &ve)
	if lo != nil || hi != nil {
		c.Price = &PriceRange{Min: lo, Max: hi}
	}
	if okLo && okHi && lo != nil && hi != nil && *lo > *hi {
		ve.Add(ParamPriceMax, "must not be below "+ParamPriceMin)
	}

	from, okFrom := parseDate(q.Get(ParamFrom), ParamFrom, loc, &ve)
	to, okTo := parseDate(q.Get(ParamTo), ParamTo, loc, &ve)
	c.Dates = DateRange{From: from, To: to}
	if okFrom && okTo && from != nil && to != nil && from.After(*to) {
		ve.Add(ParamTo, "must not be before "+ParamFrom)
	}

	return c, ve.OrNil()
}

func parsePrice(raw, field string, ve *apperr.ValidationError) (*float64, bool) {
	raw = normalize.QueryParam(raw)
	if raw == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		ve.Add(field, "must be a non-negative number")
		return nil, false
	}
	return &f, true
}

func parseDate(raw, field string, loc *time.Location, ve *apperr.ValidationError) (*time.Time, bool) {
	raw = normalize.QueryParam(raw)
	if raw == "" {
		return nil, true
	}
	t, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		ve.Add(field, "must be a date in YYYY-MM-DD format")
		return nil, false
	}
	return &t, true
}

func formatPrice(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
