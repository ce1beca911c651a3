// internal/app/bootstrap/services.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/campanion/internal/app/campservice"
	"github.com/dalemusser/campanion/internal/app/extract"
	"github.com/dalemusser/campanion/internal/app/policy/camppolicy"
	"github.com/dalemusser/campanion/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Services are the domain services shared by the HTTP server and campctl.
type Services struct {
	Camps   *campservice.Service
	Extract *extract.Service
}

// NewServices builds the services over deps. Extraction is left disabled
// (Prefill answers with a warning) when no Gemini key is configured.
func NewServices(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (Services, error) {
	loc, err := time.LoadLocation(appCfg.TimeZone)
	if err != nil {
		return Services{}, fmt.Errorf("time_zone: %w", err)
	}
	policy, err := camppolicy.ParseDetailPolicy(appCfg.DetailPolicy)
	if err != nil {
		return Services{}, err
	}

	camps := campservice.New(deps.Camps, deps.Organizers, logger.Named("camps"), campservice.Options{
		Loc:              loc,
		DetailPolicy:     policy,
		StrictStatus:     appCfg.StrictStatus,
		PageSize:         appCfg.PageSize,
		BatchConcurrency: appCfg.BulkArchiveConcurrency,
		BatchChunk:       appCfg.BulkArchiveChunk,
	})

	var extractor extract.Extractor
	if appCfg.GeminiAPIKey != "" {
		var fetcher extract.Fetcher = extract.NewHTTPFetcher(timeouts.Extract())
		if appCfg.ExtractFetcher == "browser" {
			fetcher = extract.NewBrowserFetcher(appCfg.BrowserBin)
		}
		ex, err := extract.NewGenAIExtractor(ctx, appCfg.GeminiAPIKey, appCfg.GeminiModel, fetcher)
		if err != nil {
			return Services{}, err
		}
		extractor = ex
		logger.Info("camp extraction enabled",
			zap.String("model", appCfg.GeminiModel),
			zap.String("fetcher", appCfg.ExtractFetcher))
	} else {
		logger.Info("camp extraction disabled (no gemini_api_key)")
	}

	return Services{
		Camps:   camps,
		Extract: extract.NewService(extractor, loc, logger.Named("extract")),
	}, nil
}
