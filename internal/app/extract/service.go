package extract

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/campanion/internal/app/campservice"
	"github.com/dalemusser/campanion/internal/app/system/inputval"
	"github.com/dalemusser/campanion/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Result is a pre-filled form. Extracted is false when nothing could be
// merged; Form is then the input form unchanged.
type Result struct {
	Form      campservice.CampInput `json:"form"`
	Extracted bool                  `json:"extracted"`
	Warnings  []Warning             `json:"warnings"`
}

// Service runs the extractor under a deadline and merges its output.
type Service struct {
	extractor Extractor
	layouts   []string
	loc       *time.Location
	log       *zap.Logger
}

// NewService accepts a nil extractor; Prefill then only warns.
func NewService(extractor Extractor, loc *time.Location, log *zap.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{extractor: extractor, layouts: DefaultDateLayouts, loc: loc, log: log}
}

// Enabled reports whether an extractor is configured.
func (s *Service) Enabled() bool { return s.extractor != nil }

// Extract runs the extractor alone under the extraction deadline.
func (s *Service) Extract(ctx context.Context, url string) (PartialCamp, error) {
	if s.extractor == nil {
		return PartialCamp{}, errors.New("extraction is not configured")
	}
	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Extract(), s.log, "extract")
	defer cancel()
	return s.extractor.Extract(ctx, url)
}

// Prefill never fails: extraction errors and timeouts become warnings and
// the form comes back as given.
func (s *Service) Prefill(ctx context.Context, url string, form campservice.CampInput) Result {
	unchanged := func(field, msg string) Result {
		return Result{Form: form, Warnings: []Warning{{Field: field, Message: msg}}}
	}
	if !inputval.IsValidHTTPURL(url) {
		return unchanged("url", "Enter an http or https address to import from.")
	}
	if s.extractor == nil {
		return unchanged("url", "Importing from a web page is not available.")
	}

	p, err := s.Extract(ctx, url)
	if err != nil {
		msg := "Could not read camp details from that page."
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "Reading that page took too long."
		}
		s.log.Warn("extraction failed", zap.String("url", url), zap.Error(err))
		return unchanged("url", msg)
	}
	if p.Empty() {
		return unchanged("url", "No camp details were found on that page.")
	}

	merged, warnings := Merge(form, p, s.layouts, s.loc)
	if warnings == nil {
		warnings = []Warning{}
	}
	return Result{Form: merged, Extracted: true, Warnings: warnings}
}
