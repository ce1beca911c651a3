package campfilter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/campanion/internal/app/system/status"
	"github.com/dalemusser/campanion/internal/domain/models"
	"golang.org/x/text/cases"
)

// SortMode selects the result order.
type SortMode int

const (
	// SortLifecycle orders Active, Draft, Archived, newest first within each.
	SortLifecycle SortMode = iota
	// SortNewest orders by creation time, newest first.
	SortNewest
	// SortSoonest orders by start date, earliest first, unscheduled last.
	SortSoonest
)

var sortNames = map[SortMode]string{
	SortLifecycle: "lifecycle",
	SortNewest:    "newest",
	SortSoonest:   "soonest",
}

func (m SortMode) String() string {
	if s, ok := sortNames[m]; ok {
		return s
	}
	return fmt.Sprintf("SortMode(%d)", int(m))
}

// ParseSort maps a query value to a SortMode, falling back to def.
func ParseSort(s string, def SortMode) SortMode {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range sortNames {
		if name == s {
			return m
		}
	}
	return def
}

// matcher holds per-call state. cases.Caser is not safe for concurrent use,
// so each FilterAndSort call builds its own.
type matcher struct {
	c      Criteria
	fold   cases.Caser
	needle string
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{c: c, fold: cases.Fold()}
	if c.Search != "" {
		m.needle = m.fold.String(c.Search)
	}
	return m
}

func (m *matcher) match(camp models.Camp) bool {
	return m.matchSearch(camp) &&
		matchOrganizer(camp, m.c.OrganizerID) &&
		matchLocation(camp, m.c.Location) &&
		matchPrice(camp, m.c.Price) &&
		matchDates(camp, m.c.Dates)
}

func (m *matcher) matchSearch(camp models.Camp) bool {
	if m.needle == "" {
		return true
	}
	if m.contains(camp.Name) || m.contains(camp.Description) {
		return true
	}
	for _, a := range camp.Activities {
		if m.contains(a) {
			return true
		}
	}
	return false
}

func (m *matcher) contains(hay string) bool {
	return hay != "" && strings.Contains(m.fold.String(hay), m.needle)
}

func matchOrganizer(camp models.Camp, id string) bool {
	return id == "" || camp.OrganizerID == id
}

func matchLocation(camp models.Camp, loc string) bool {
	return loc == "" || camp.Location == loc
}

func matchPrice(camp models.Camp, p *PriceRange) bool {
	if p == nil {
		return true
	}
	if p.Min != nil && camp.Price < *p.Min {
		return false
	}
	if p.Max != nil && camp.Price > *p.Max {
		return false
	}
	return true
}

// matchDates applies the overlap rule start <= to && end >= from, checking
// only the bounds given. A camp without both dates never matches an active
// date filter.
func matchDates(camp models.Camp, d DateRange) bool {
	if !d.Active() {
		return true
	}
	if camp.StartDate == nil || camp.EndDate == nil {
		return false
	}
	if d.To != nil && dayOf(*camp.StartDate, d.To.Location()).After(dayOf(*d.To, d.To.Location())) {
		return false
	}
	if d.From != nil && dayOf(*camp.EndDate, d.From.Location()).Before(dayOf(*d.From, d.From.Location())) {
		return false
	}
	return true
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Match reports whether a single camp passes the criteria.
func Match(camp models.Camp, c Criteria) bool {
	return newMatcher(c).match(camp)
}

// Filter returns the camps passing c, in input order, as a new slice.
func Filter(camps []models.Camp, c Criteria) []models.Camp {
	m := newMatcher(c)
	out := make([]models.Camp, 0, len(camps))
	for _, camp := range camps {
		if m.match(camp) {
			out = append(out, camp)
		}
	}
	return out
}

// Sort orders camps in place. The sort is stable.
func Sort(camps []models.Camp, mode SortMode) {
	switch mode {
	case SortNewest:
		sort.SliceStable(camps, func(i, j int) bool {
			return camps[i].CreatedAt.After(camps[j].CreatedAt)
		})
	case SortSoonest:
		sort.SliceStable(camps, func(i, j int) bool {
			a, b := camps[i].StartDate, camps[j].StartDate
			switch {
			case a == nil && b == nil:
				return camps[i].CreatedAt.After(camps[j].CreatedAt)
			case a == nil:
				return false
			case b == nil:
				return true
			case !a.Equal(*b):
				return a.Before(*b)
			}
			return camps[i].CreatedAt.After(camps[j].CreatedAt)
		})
	default:
		sort.SliceStable(camps, func(i, j int) bool {
			ri, rj := status.Of(camps[i].Status).Rank(), status.Of(camps[j].Status).Rank()
			if ri != rj {
				return ri < rj
			}
			return camps[i].CreatedAt.After(camps[j].CreatedAt)
		})
	}
}

// FilterAndSort filters, then sorts, returning a new slice. The input is not
// modified.
func FilterAndSort(camps []models.Camp, c Criteria, mode SortMode) []models.Camp {
	out := Filter(camps, c)
	Sort(out, mode)
	return out
}
