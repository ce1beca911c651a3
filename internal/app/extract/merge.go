package extract

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dalemusser/campanion/internal/app/campservice"
	"github.com/dalemusser/campanion/internal/app/system/campfilter"
	"github.com/dalemusser/campanion/internal/app/system/htmlsanitize"
	"github.com/dalemusser/campanion/internal/app/system/inputval"
	"github.com/dalemusser/campanion/internal/app/system/normalize"
)

// DefaultDateLayouts are tried in order; the first that parses wins.
var DefaultDateLayouts = []string{
	campfilter.DateLayout,
	time.RFC3339,
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"Monday, January 2, 2006",
	"Mon, Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
}

// Warning is a non-fatal problem found while pre-filling.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var ordinal = regexp.MustCompile(`\b(\d{1,2})(st|nd|rd|th)\b`)

// ParseDate tries each layout in order. "July 1st" style ordinals are
// accepted.
func ParseDate(s string, layouts []string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(ordinal.ReplaceAllString(strings.TrimSpace(s), "$1"))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			y, m, d := t.In(loc).Date()
			return time.Date(y, m, d, 0, 0, 0, 0, loc), true
		}
	}
	return time.Time{}, false
}

// Merge overwrites only the form fields the extraction provided. Text is
// reduced to plain text. A value that cannot be used adds a warning and the
// form keeps what it had. form is not modified.
func Merge(form campservice.CampInput, p PartialCamp, layouts []string, loc *time.Location) (campservice.CampInput, []Warning) {
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	if loc == nil {
		loc = time.UTC
	}
	out := form
	out.Activities = append([]string(nil), form.Activities...)
	var warnings []Warning

	text := func(dst *string, v *string) {
		if v == nil {
			return
		}
		if t := htmlsanitize.PlainText(*v); t != "" {
			*dst = t
		}
	}
	text(&out.Name, p.Name)
	text(&out.Description, p.Description)
	text(&out.Location, p.Location)

	date := func(dst *string, v *string, field, label string) {
		if v == nil {
			return
		}
		raw := htmlsanitize.PlainText(*v)
		t, ok := ParseDate(raw, layouts, loc)
		if !ok {
			warnings = append(warnings, Warning{Field: field,
				Message: fmt.Sprintf("Could not read the %s %q; kept the current value.", label, raw)})
			return
		}
		*dst = t.Format(campfilter.DateLayout)
	}
	date(&out.StartDate, p.StartDate, "startDate", "start date")
	date(&out.EndDate, p.EndDate, "endDate", "end date")

	if p.Price != nil {
		if *p.Price < 0 {
			warnings = append(warnings, Warning{Field: "price",
				Message: "The extracted price was negative; kept the current value."})
		} else {
			out.Price = *p.Price
		}
	}

	if p.ImageURL != nil {
		if u := strings.TrimSpace(*p.ImageURL); inputval.IsValidHTTPURL(u) {
			out.ImageURL = u
		} else {
			warnings = append(warnings, Warning{Field: "imageUrl",
				Message: "The extracted image address is not a web URL; kept the current value."})
		}
	}

	if len(p.Activities) > 0 {
		acts := make([]string, 0, len(p.Activities))
		for _, a := range p.Activities {
			acts = append(acts, htmlsanitize.PlainText(a))
		}
		if acts = normalize.Activities(acts); len(acts) > 0 {
			out.Activities = acts
		}
	}

	if out.StartDate != "" && out.EndDate != "" && out.EndDate < out.StartDate {
		warnings = append(warnings, Warning{Field: "endDate",
			Message: "The end date is before the start date."})
	}
	return out, warnings
}
