package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/campanion/internal/app/system/inputval"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// BrowserFetcher renders pages in headless Chrome so script-built content
// is included. Each Fetch launches and tears down its own browser.
type BrowserFetcher struct {
	// Bin is the Chrome binary; empty lets rod find or download one.
	Bin string
	// Settle is how long to wait after load for late content.
	Settle time.Duration
}

func NewBrowserFetcher(bin string) *BrowserFetcher {
	return &BrowserFetcher{Bin: bin, Settle: 500 * time.Millisecond}
}

func (f *BrowserFetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	if !inputval.IsValidHTTPURL(rawURL) {
		return Page{}, fmt.Errorf("fetch %q: not an http(s) URL", rawURL)
	}
	rawURL = strings.TrimSpace(rawURL)

	l := launcher.New().Context(ctx).Headless(true)
	if f.Bin != "" {
		l = l.Bin(f.Bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return Page{}, fmt.Errorf("launch browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return Page{}, fmt.Errorf("connect browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: rawURL})
	if err != nil {
		return Page{}, fmt.Errorf("open %s: %w", rawURL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return Page{}, fmt.Errorf("load %s: %w", rawURL, err)
	}
	if f.Settle > 0 {
		select {
		case <-time.After(f.Settle):
		case <-ctx.Done():
			return Page{}, ctx.Err()
		}
	}

	doc, err := page.HTML()
	if err != nil {
		return Page{}, fmt.Errorf("read %s: %w", rawURL, err)
	}
	return ParseHTML(rawURL, strings.NewReader(doc))
}
