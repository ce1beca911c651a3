package campservice

import (
	"context"
	"errors"

	"github.com/dalemusser/campanion/internal/app/policy/camppolicy"
	campstore "github.com/dalemusser/campanion/internal/app/store/camps"
	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/app/system/status"
	"github.com/dalemusser/campanion/internal/app/system/timeouts"
	"golang.org/x/sync/errgroup"
	"go.uber.org/zap"
)

// BulkReport aggregates a bulk archive. Partial failure is reported here as
// a count, never returned as an error. Which camps failed is only logged.
type BulkReport struct {
	Attempted int `json:"attempted"`
	Archived  int `json:"archived"`
	Failed    int `json:"failed"`
}

// BulkArchiveStarted archives every camp ListStartedActive would return.
// Updates are independent; the call only fails when the camps cannot be
// listed.
func (s *Service) BulkArchiveStarted(ctx context.Context, actor camppolicy.Viewer) (BulkReport, error) {
	if err := requireAdmin(actor, "archive started"); err != nil {
		return BulkReport{}, err
	}
	started, err := s.startedActive(ctx, actor)
	if err != nil {
		return BulkReport{}, err
	}
	ids := make([]string, len(started))
	for i, c := range started {
		ids[i] = c.ID
	}

	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Batch(), s.log, "bulk archive")
	defer cancel()
	outcomes := s.batchSetStatus(ctx, ids, status.Archive)

	report := BulkReport{Attempted: len(ids)}
	for _, o := range outcomes {
		if o.Err == nil {
			report.Archived++
			continue
		}
		s.log.Warn("bulk archive: camp not archived",
			zap.String("camp_id", o.ID),
			zap.String("actor_id", actor.UID),
			zap.String("reason", failureText(o.Err)),
			zap.Error(o.Err))
		report.Failed++
	}
	s.log.Info("bulk archive finished",
		zap.String("actor_id", actor.UID),
		zap.Int("attempted", report.Attempted),
		zap.Int("archived", report.Archived),
		zap.Int("failed", report.Failed))
	return report, nil
}

// batchSetStatus splits ids into chunks and runs them on a bounded group.
// Each chunk writes only its own range of the outcome slice.
func (s *Service) batchSetStatus(ctx context.Context, ids []string, st string) []campstore.Outcome {
	outcomes := make([]campstore.Outcome, len(ids))
	var g errgroup.Group
	g.SetLimit(s.opts.BatchConcurrency)

	for start := 0; start < len(ids); start += s.opts.BatchChunk {
		end := min(start+s.opts.BatchChunk, len(ids))
		g.Go(func() error {
			chunk := ids[start:end]
			res := s.camps.BatchSetStatus(ctx, chunk, st)
			for i := range chunk {
				if i < len(res) {
					outcomes[start+i] = res[i]
				} else {
					outcomes[start+i] = campstore.Outcome{ID: chunk[i], Err: errors.New("no outcome reported")}
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func failureText(err error) string {
	switch {
	case apperr.IsNotFound(err):
		return "camp no longer exists"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "timed out"
	}
	return "store update failed"
}
