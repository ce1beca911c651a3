package campservice

import (
	"context"
	"fmt"

	"github.com/dalemusser/campanion/internal/app/policy/camppolicy"
	campstore "github.com/dalemusser/campanion/internal/app/store/camps"
	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/app/system/campfilter"
	"github.com/dalemusser/campanion/internal/app/system/paging"
	"github.com/dalemusser/campanion/internal/app/system/status"
	"github.com/dalemusser/campanion/internal/domain/models"
	"go.uber.org/zap"
)

// CopySuffix is appended to the name of a copied camp.
const CopySuffix = " (Copy)"

// ListQuery selects one page of a listing.
type ListQuery struct {
	Criteria campfilter.Criteria
	// Sort is used when HasSort is set; otherwise the listing's default.
	Sort    campfilter.SortMode
	HasSort bool
	Page    int
}

// Listing is one page plus the facets of the whole eligible set.
type Listing struct {
	Page        paging.Page[CampView] `json:"page"`
	Locations   []string              `json:"locations"`
	PriceBounds *campfilter.Bounds    `json:"priceBounds,omitempty"`
	FilterKey   string                `json:"filterKey"`
}

func requireAdmin(actor camppolicy.Viewer, op string) error {
	if !actor.SignedIn() {
		return fmt.Errorf("%s: %w", op, apperr.ErrUnauthenticated)
	}
	if !actor.IsAdmin {
		return fmt.Errorf("%s: admin only: %w", op, apperr.ErrPermissionDenied)
	}
	return nil
}

func (s *Service) list(ctx context.Context, q campstore.Query) ([]models.Camp, error) {
	ctx, cancel := s.short(ctx, "camps.list")
	defer cancel()
	camps, err := s.camps.List(ctx, q)
	if err != nil {
		return nil, apperr.Collaborator("camps.list", err)
	}
	return camps, nil
}

func (s *Service) load(ctx context.Context, id string) (models.Camp, error) {
	ctx, cancel := s.short(ctx, "camps.get")
	defer cancel()
	c, err := s.camps.Get(ctx, id)
	if err != nil {
		return models.Camp{}, apperr.Collaborator("camps.get", err)
	}
	return c, nil
}

// loadOwned loads a camp for mutation by actor.
func (s *Service) loadOwned(ctx context.Context, actor camppolicy.Viewer, id, op string) (models.Camp, error) {
	if err := requireAdmin(actor, op); err != nil {
		return models.Camp{}, err
	}
	c, err := s.load(ctx, id)
	if err != nil {
		return models.Camp{}, err
	}
	if !camppolicy.IsOwner(c, actor) {
		s.log.Info("mutation refused: not the owner",
			zap.String("op", op),
			zap.String("camp_id", id),
			zap.String("actor_id", actor.UID))
		return models.Camp{}, fmt.Errorf("%s %s: %w", op, id, apperr.ErrPermissionDenied)
	}
	return c, nil
}

func (s *Service) listing(camps []models.Camp, v camppolicy.Viewer, q ListQuery, def campfilter.SortMode) Listing {
	mode := def
	if q.HasSort {
		mode = q.Sort
	}
	rows := s.views(campfilter.FilterAndSort(camps, q.Criteria, mode), v)
	out := Listing{
		Page:      paging.Paginate(rows, q.Page, s.opts.PageSize),
		Locations: campfilter.Locations(camps),
		FilterKey: q.Criteria.Key(),
	}
	if b, ok := campfilter.PriceBounds(camps); ok {
		out.PriceBounds = &b
	}
	return out
}

// ListPublic lists active camps, soonest first.
func (s *Service) ListPublic(ctx context.Context, viewer camppolicy.Viewer, q ListQuery) (Listing, error) {
	camps, err := s.list(ctx, campstore.Query{Status: status.Active})
	if err != nil {
		return Listing{}, err
	}
	visible := camps[:0]
	for _, c := range camps {
		if camppolicy.IsVisible(c, viewer) {
			visible = append(visible, c)
		}
	}
	return s.listing(visible, viewer, q, campfilter.SortSoonest), nil
}

// ListMine lists every camp the actor created, in lifecycle order.
func (s *Service) ListMine(ctx context.Context, actor camppolicy.Viewer, q ListQuery) (Listing, error) {
	if err := requireAdmin(actor, "list mine"); err != nil {
		return Listing{}, err
	}
	camps, err := s.list(ctx, campstore.Query{CreatorID: actor.UID})
	if err != nil {
		return Listing{}, err
	}
	return s.listing(camps, actor, q, campfilter.SortLifecycle), nil
}

// ListStartedActive lists the actor's active camps whose start date has
// passed, earliest start first.
func (s *Service) ListStartedActive(ctx context.Context, actor camppolicy.Viewer) ([]CampView, error) {
	if err := requireAdmin(actor, "list started"); err != nil {
		return nil, err
	}
	started, err := s.startedActive(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.views(started, actor), nil
}

func (s *Service) startedActive(ctx context.Context, actor camppolicy.Viewer) ([]models.Camp, error) {
	camps, err := s.list(ctx, campstore.Query{CreatorID: actor.UID, Status: status.Active})
	if err != nil {
		return nil, err
	}
	now := s.opts.Clock()
	var started []models.Camp
	for _, c := range camps {
		if camppolicy.IsOwner(c, actor) && camppolicy.StartedActive(c, now, s.opts.Loc) {
			started = append(started, c)
		}
	}
	camppolicy.SortStartedFirst(started)
	return started, nil
}

// Get returns a camp's detail view. Hidden and missing camps both report
// apperr.ErrNotFound.
func (s *Service) Get(ctx context.Context, viewer camppolicy.Viewer, id string) (CampView, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return CampView{}, err
	}
	if !s.opts.DetailPolicy.CanView(c, viewer) {
		return CampView{}, fmt.Errorf("camp %s: %w", id, apperr.ErrNotFound)
	}
	return s.view(c, viewer)
}

// snapshot copies the organizer's name and link onto c. An empty id clears
// the organizer.
func (s *Service) snapshot(ctx context.Context, c *models.Camp, organizerID string) error {
	c.OrganizerID = organizerID
	c.OrganizerName = ""
	c.OrganizerLink = ""
	if organizerID == "" {
		return nil
	}
	ctx, cancel := s.short(ctx, "organizers.get")
	defer cancel()
	o, err := s.organizers.Get(ctx, organizerID)
	if apperr.IsNotFound(err) {
		return apperr.Invalid("organizerId", "Organizer not found.")
	}
	if err != nil {
		return apperr.Collaborator("organizers.get", err)
	}
	c.OrganizerName = o.Name
	c.OrganizerLink = o.Link
	return nil
}

// Create stores a new camp owned by actor.
func (s *Service) Create(ctx context.Context, actor camppolicy.Viewer, in CampInput) (CampView, error) {
	if err := requireAdmin(actor, "create camp"); err != nil {
		return CampView{}, err
	}
	f, err := parseCampInput(in, s.opts.Loc, true)
	if err != nil {
		return CampView{}, err
	}

	now := s.now()
	c := models.Camp{
		CreatorID:    actor.UID,
		CreationMode: models.CreationModeAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.apply(&c)
	if err := s.snapshot(ctx, &c, f.organizerID); err != nil {
		return CampView{}, err
	}

	wctx, cancel := s.short(ctx, "camps.create")
	defer cancel()
	created, err := s.camps.Create(wctx, c)
	if err != nil {
		return CampView{}, apperr.Collaborator("camps.create", err)
	}
	s.log.Info("camp created",
		zap.String("camp_id", created.ID),
		zap.String("actor_id", actor.UID),
		zap.String("status", created.Status))
	return s.view(created, actor)
}

// Edit overwrites every mutable field of an owned camp.
func (s *Service) Edit(ctx context.Context, actor camppolicy.Viewer, id string, in CampInput) (CampView, error) {
	c, err := s.loadOwned(ctx, actor, id, "edit camp")
	if err != nil {
		return CampView{}, err
	}
	f, err := parseCampInput(in, s.opts.Loc, false)
	if err != nil {
		return CampView{}, err
	}

	f.apply(&c)
	if err := s.snapshot(ctx, &c, f.organizerID); err != nil {
		return CampView{}, err
	}
	c.UpdatedAt = s.now()

	wctx, cancel := s.short(ctx, "camps.update")
	defer cancel()
	if err := s.camps.Update(wctx, c); err != nil {
		return CampView{}, apperr.Collaborator("camps.update", err)
	}
	s.log.Info("camp edited", zap.String("camp_id", id), zap.String("actor_id", actor.UID))
	return s.view(c, actor)
}

// Archive sets an owned camp's status to archive.
func (s *Service) Archive(ctx context.Context, actor camppolicy.Viewer, id string) error {
	if _, err := s.loadOwned(ctx, actor, id, "archive camp"); err != nil {
		return err
	}
	wctx, cancel := s.short(ctx, "camps.set_status")
	defer cancel()
	if err := s.camps.SetStatus(wctx, id, status.Archive); err != nil {
		return apperr.Collaborator("camps.set_status", err)
	}
	s.log.Info("camp archived", zap.String("camp_id", id), zap.String("actor_id", actor.UID))
	return nil
}

// Copy creates a draft duplicate of an owned camp. The original is not
// modified.
func (s *Service) Copy(ctx context.Context, actor camppolicy.Viewer, id string) (CampView, error) {
	orig, err := s.loadOwned(ctx, actor, id, "copy camp")
	if err != nil {
		return CampView{}, err
	}

	now := s.now()
	dup := orig.Clone()
	dup.ID = ""
	dup.Name = orig.Name + CopySuffix
	dup.Status = status.Draft
	dup.CreatorID = actor.UID
	dup.CreatedAt = now
	dup.UpdatedAt = now

	wctx, cancel := s.short(ctx, "camps.create")
	defer cancel()
	created, err := s.camps.Create(wctx, dup)
	if err != nil {
		return CampView{}, apperr.Collaborator("camps.create", err)
	}
	s.log.Info("camp copied",
		zap.String("camp_id", created.ID),
		zap.String("source_id", id),
		zap.String("actor_id", actor.UID))
	return s.view(created, actor)
}

// Delete removes an owned camp.
func (s *Service) Delete(ctx context.Context, actor camppolicy.Viewer, id string) error {
	if _, err := s.loadOwned(ctx, actor, id, "delete camp"); err != nil {
		return err
	}
	wctx, cancel := s.short(ctx, "camps.delete")
	defer cancel()
	if err := s.camps.Delete(wctx, id); err != nil {
		return apperr.Collaborator("camps.delete", err)
	}
	s.log.Info("camp deleted", zap.String("camp_id", id), zap.String("actor_id", actor.UID))
	return nil
}
