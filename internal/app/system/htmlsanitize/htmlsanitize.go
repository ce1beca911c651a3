// Package htmlsanitize cleans user- and model-supplied text with bluemonday.
//
// Camp descriptions may carry light formatting. Everything else (names,
// locations, activity tags, extracted values) is plain text.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugc    = newUGCPolicy()
	strict = bluemonday.StrictPolicy()
)

func newUGCPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "mark")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Sanitize keeps safe formatting (paragraphs, lists, emphasis, links) and
// strips scripts, event handlers, iframes and forms.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(ugc.Sanitize(s))
}

// PlainText strips every tag and decodes entities, returning text suitable
// for a single-line field.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	out := html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(out), " ")
}

// IsPlainText reports whether s carries no markup.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}
