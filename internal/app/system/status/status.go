// Package status defines the camp lifecycle states and the display status
// derived from them.
//
// Stored states: draft, active, archive. Every state can reach every other
// through an edit; none is terminal.
//
// Display status: Active, Draft, Archived, plus an explicit Unknown arm for
// stored values outside the three states. Of() keeps the historical
// behaviour of showing Unknown as Draft; Strict() reports it instead.
package status

import (
	"strings"

	"github.com/dalemusser/campanion/internal/app/system/apperr"
)

const (
	Draft   = "draft"
	Active  = "active"
	Archive = "archive"
)

// All lists the stored states in lifecycle order.
var All = []string{Active, Draft, Archive}

// Valid reports whether s is one of the stored states.
func Valid(s string) bool {
	switch s {
	case Draft, Active, Archive:
		return true
	}
	return false
}

// Initial reports whether s may be used when a camp is first created.
func Initial(s string) bool {
	return s == Draft || s == Active
}

// Display is the label shown to viewers.
type Display int

const (
	DisplayActive Display = iota
	DisplayDraft
	DisplayArchived
	DisplayUnknown
)

func (d Display) String() string {
	switch d {
	case DisplayActive:
		return "Active"
	case DisplayDraft:
		return "Draft"
	case DisplayArchived:
		return "Archived"
	}
	return "Unknown"
}

// MarshalText renders the label, so JSON carries "Active" rather than 0.
func (d Display) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Rank orders displays for listings: Active < Draft < Archived.
// Unknown sorts with Draft, matching Of().
func (d Display) Rank() int {
	switch d {
	case DisplayActive:
		return 0
	case DisplayArchived:
		return 2
	}
	return 1
}

// Classify maps a stored value to its display, with DisplayUnknown for
// anything unrecognized. Matching is exact; "Active" is not "active".
func Classify(s string) Display {
	switch s {
	case Active:
		return DisplayActive
	case Draft:
		return DisplayDraft
	case Archive:
		return DisplayArchived
	}
	return DisplayUnknown
}

// Of is the fail-safe display status: unrecognized values show as Draft.
func Of(s string) Display {
	d := Classify(s)
	if d == DisplayUnknown {
		return DisplayDraft
	}
	return d
}

// Strict is like Classify but returns a validation error on the status field
// for unrecognized values.
func Strict(s string) (Display, error) {
	d := Classify(s)
	if d == DisplayUnknown {
		return d, apperr.Invalid("status", "unrecognized status "+quote(s))
	}
	return d, nil
}

// Parse normalizes user input ("  Active ") to a stored state.
func Parse(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, Valid(s)
}

func quote(s string) string { return "\"" + s + "\"" }
