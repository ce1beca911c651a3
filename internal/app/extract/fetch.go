package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/campanion/internal/app/system/inputval"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// MaxPageBytes caps the HTML read from one page.
	MaxPageBytes = 2 << 20
	// MaxTextRunes caps the text handed to the extractor.
	MaxTextRunes = 20000
)

var ErrNotHTML = errors.New("page is not HTML")

// HTTPFetcher fetches pages with a plain GET. Pages that build their content
// with JavaScript need BrowserFetcher.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: "campanion-extract/1.0",
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	if !inputval.IsValidHTTPURL(rawURL) {
		return Page{}, fmt.Errorf("fetch %q: not an http(s) URL", rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(rawURL), nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.Client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Page{}, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return Page{}, fmt.Errorf("fetch %s: %w (%s)", rawURL, ErrNotHTML, ct)
	}
	return ParseHTML(resp.Request.URL.String(), io.LimitReader(resp.Body, MaxPageBytes))
}

// ParseHTML extracts the title, og:image and visible text of a document.
// Script, style and similar non-content elements are skipped.
func ParseHTML(pageURL string, r io.Reader) (Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Page{}, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	p := Page{URL: pageURL}
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Svg, atom.Iframe:
				return
			case atom.Title:
				if p.Title == "" && n.FirstChild != nil {
					p.Title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			case atom.Meta:
				if p.Image == "" && (attr(n, "property") == "og:image" || attr(n, "name") == "og:image") {
					p.Image = resolve(pageURL, attr(n, "content"))
				}
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				sb.WriteString(t)
				sb.WriteByte('\n')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	p.Text = truncateRunes(sb.String(), MaxTextRunes)
	return p, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

func resolve(base, ref string) string {
	if ref == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	u, err := b.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
