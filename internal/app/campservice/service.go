// Package campservice is the lifecycle layer over the camp and organizer
// stores. Every mutation re-loads the record and re-checks ownership right
// before writing; reads apply the visibility policy and the filter engine.
package campservice

import (
	"context"
	"time"

	"github.com/dalemusser/campanion/internal/app/policy/camppolicy"
	campstore "github.com/dalemusser/campanion/internal/app/store/camps"
	organizerstore "github.com/dalemusser/campanion/internal/app/store/organizers"
	"github.com/dalemusser/campanion/internal/app/system/paging"
	"github.com/dalemusser/campanion/internal/app/system/status"
	"github.com/dalemusser/campanion/internal/app/system/timeouts"
	"github.com/dalemusser/campanion/internal/domain/models"
	"go.uber.org/zap"
)

// Options tunes the service. Zero values select the defaults.
type Options struct {
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
	// Loc is the zone calendar dates are read in. Defaults to UTC.
	Loc *time.Location
	// DetailPolicy picks who may open a camp that is not active.
	DetailPolicy camppolicy.DetailPolicy
	// StrictStatus makes unrecognized stored statuses an error instead of
	// displaying them as drafts.
	StrictStatus bool
	PageSize     int
	// BatchConcurrency bounds the parallel chunks of a bulk archive.
	BatchConcurrency int
	// BatchChunk is the number of ids per store batch call.
	BatchChunk int
}

const (
	defaultBatchConcurrency = 4
	defaultBatchChunk       = 25
)

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Loc == nil {
		o.Loc = time.UTC
	}
	if o.DetailPolicy == "" {
		o.DetailPolicy = camppolicy.DetailAdmin
	}
	if o.PageSize <= 0 {
		o.PageSize = paging.PageSize
	}
	o.PageSize = paging.NormalizeSize(o.PageSize)
	if o.BatchConcurrency <= 0 {
		o.BatchConcurrency = defaultBatchConcurrency
	}
	if o.BatchChunk <= 0 {
		o.BatchChunk = defaultBatchChunk
	}
	return o
}

type Service struct {
	camps      campstore.Store
	organizers organizerstore.Store
	opts       Options
	log        *zap.Logger
}

func New(camps campstore.Store, organizers organizerstore.Store, log *zap.Logger, opts Options) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{camps: camps, organizers: organizers, opts: opts.withDefaults(), log: log}
}

// Location returns the zone calendar dates are read in.
func (s *Service) Location() *time.Location { return s.opts.Loc }

func (s *Service) now() time.Time {
	return s.opts.Clock().UTC().Truncate(time.Millisecond)
}

func (s *Service) short(ctx context.Context, op string) (context.Context, context.CancelFunc) {
	return timeouts.WithTimeout(ctx, timeouts.Short(), s.log, op)
}

// CampView is a camp as shown to one viewer.
type CampView struct {
	models.Camp
	DisplayStatus status.Display     `json:"displayStatus"`
	Actions       camppolicy.Actions `json:"actions"`
}

func (s *Service) view(c models.Camp, v camppolicy.Viewer) (CampView, error) {
	d := camppolicy.DisplayStatus(c)
	if s.opts.StrictStatus {
		var err error
		if d, err = status.Strict(c.Status); err != nil {
			return CampView{}, err
		}
	}
	return CampView{Camp: c, DisplayStatus: d, Actions: camppolicy.AllowedActions(c, v)}, nil
}

// views converts camps, dropping (and logging) any the strict status check
// rejects.
func (s *Service) views(camps []models.Camp, v camppolicy.Viewer) []CampView {
	out := make([]CampView, 0, len(camps))
	for _, c := range camps {
		cv, err := s.view(c, v)
		if err != nil {
			s.log.Warn("skipping camp with unrecognized status",
				zap.String("camp_id", c.ID),
				zap.String("status", c.Status))
			continue
		}
		out = append(out, cv)
	}
	return out
}
