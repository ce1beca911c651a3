// Package camppolicy decides which camps a viewer may see and what they may
// do with them.
//
// Authorization rules:
//   - Anyone sees active camps.
//   - An admin who created a camp (the owner) sees it in every status and may
//     edit, delete, copy and archive it. Being an admin alone grants no
//     mutation rights on someone else's camp.
//   - Detail pages use one of two rules, selected by DetailPolicy: any admin
//     may open a hidden camp (DetailAdmin), or only the owner may (DetailOwner).
//
// Every function takes the viewer explicitly and does no I/O.
package camppolicy

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/campanion/internal/app/system/status"
	"github.com/dalemusser/campanion/internal/domain/models"
)

// Viewer is the identity a request acts as. The zero value is anonymous.
type Viewer struct {
	UID     string
	Email   string
	IsAdmin bool
}

// Anonymous returns the signed-out viewer.
func Anonymous() Viewer { return Viewer{} }

func (v Viewer) SignedIn() bool { return v.UID != "" }

// IsOwner reports whether v is an admin and the camp's creator.
func IsOwner(c models.Camp, v Viewer) bool {
	return v.IsAdmin && v.UID != "" && c.CreatorID == v.UID
}

// IsVisible is the list-level rule.
func IsVisible(c models.Camp, v Viewer) bool {
	return c.Status == status.Active || IsOwner(c, v)
}

// CanViewDetail is the detail-page rule used today: any admin may open a
// camp that is not active, whether or not they created it.
func CanViewDetail(c models.Camp, v Viewer) bool {
	return c.Status == status.Active || v.IsAdmin
}

// CanViewDetailOwnerOnly applies the list-level rule to detail pages.
func CanViewDetailOwnerOnly(c models.Camp, v Viewer) bool {
	return IsVisible(c, v)
}

// DetailPolicy selects the detail-page rule.
type DetailPolicy string

const (
	DetailAdmin DetailPolicy = "admin"
	DetailOwner DetailPolicy = "owner"
)

// ParseDetailPolicy accepts "admin" or "owner" (case-insensitive). Empty
// means DetailAdmin.
func ParseDetailPolicy(s string) (DetailPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(DetailAdmin):
		return DetailAdmin, nil
	case string(DetailOwner):
		return DetailOwner, nil
	}
	return "", fmt.Errorf("detail policy must be %q or %q, got %q", DetailAdmin, DetailOwner, s)
}

// CanView applies the selected detail rule.
func (p DetailPolicy) CanView(c models.Camp, v Viewer) bool {
	if p == DetailOwner {
		return CanViewDetailOwnerOnly(c, v)
	}
	return CanViewDetail(c, v)
}

// Actions lists the mutations offered to a viewer on one camp.
type Actions struct {
	Edit    bool `json:"edit"`
	Delete  bool `json:"delete"`
	Copy    bool `json:"copy"`
	Archive bool `json:"archive"`
}

// Any reports whether at least one action is allowed.
func (a Actions) Any() bool { return a.Edit || a.Delete || a.Copy || a.Archive }

// AllowedActions returns every action for the owner and none for anyone else.
func AllowedActions(c models.Camp, v Viewer) Actions {
	if !IsOwner(c, v) {
		return Actions{}
	}
	return Actions{Edit: true, Delete: true, Copy: true, Archive: true}
}

// DisplayStatus is the badge shown for a camp.
func DisplayStatus(c models.Camp) status.Display {
	return status.Of(c.Status)
}

// StartedActive reports whether an active camp has already begun: its start
// date, taken as a calendar day in loc, is on or before today's date in loc.
func StartedActive(c models.Camp, now time.Time, loc *time.Location) bool {
	if c.Status != status.Active || c.StartDate == nil {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	return !dateOf(*c.StartDate, loc).After(dateOf(now, loc))
}

// SortStartedFirst orders camps by start date, earliest first. Camps without
// a start date go last. The sort is stable.
func SortStartedFirst(camps []models.Camp) {
	sort.SliceStable(camps, func(i, j int) bool {
		a, b := camps[i].StartDate, camps[j].StartDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.Before(*b)
	})
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
