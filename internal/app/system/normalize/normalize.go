// Package normalize trims and canonicalizes user-supplied values before they
// are validated or stored.
package normalize

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
)

// Email lowercases and trims.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims and collapses internal runs of whitespace. Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// QueryParam trims a raw query value. Case is preserved.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// OrganizerID trims an organizer filter value; "all" means no filter.
func OrganizerID(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}

// Activities trims each tag, drops empties and removes case-insensitive
// duplicates, keeping the first spelling and the original order.
func Activities(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, a := range in {
		a = Name(a)
		if a == "" {
			continue
		}
		k := text.Fold(a)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SplitActivities splits a comma-separated list, as typed into a single form
// field, and normalizes it.
func SplitActivities(s string) []string {
	return Activities(strings.Split(s, ","))
}
