package campservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/campanion/internal/app/policy/camppolicy"
	organizerstore "github.com/dalemusser/campanion/internal/app/store/organizers"
	"github.com/dalemusser/campanion/internal/app/system/apperr"
	"github.com/dalemusser/campanion/internal/domain/models"
	"go.uber.org/zap"
)

func organizerErr(op string, err error) error {
	if errors.Is(err, organizerstore.ErrDuplicateOrganizer) {
		return apperr.Invalid("name", "An organizer with this name already exists.")
	}
	return apperr.Collaborator(op, err)
}

func (s *Service) ListOrganizers(ctx context.Context) ([]models.Organizer, error) {
	ctx, cancel := s.short(ctx, "organizers.list")
	defer cancel()
	orgs, err := s.organizers.List(ctx)
	if err != nil {
		return nil, apperr.Collaborator("organizers.list", err)
	}
	if orgs == nil {
		orgs = []models.Organizer{}
	}
	return orgs, nil
}

func (s *Service) GetOrganizer(ctx context.Context, id string) (models.Organizer, error) {
	ctx, cancel := s.short(ctx, "organizers.get")
	defer cancel()
	o, err := s.organizers.Get(ctx, id)
	if err != nil {
		return models.Organizer{}, apperr.Collaborator("organizers.get", err)
	}
	return o, nil
}

// CreateOrganizer is open to any admin; organizers have no owner.
func (s *Service) CreateOrganizer(ctx context.Context, actor camppolicy.Viewer, in OrganizerInput) (models.Organizer, error) {
	if err := requireAdmin(actor, "create organizer"); err != nil {
		return models.Organizer{}, err
	}
	o, err := parseOrganizerInput(in)
	if err != nil {
		return models.Organizer{}, err
	}
	now := s.now()
	o.CreatedAt, o.UpdatedAt = now, now

	ctx, cancel := s.short(ctx, "organizers.create")
	defer cancel()
	created, err := s.organizers.Create(ctx, o)
	if err != nil {
		return models.Organizer{}, organizerErr("organizers.create", err)
	}
	s.log.Info("organizer created", zap.String("organizer_id", created.ID), zap.String("actor_id", actor.UID))
	return created, nil
}

// UpdateOrganizer rewrites the profile. Camps keep the snapshot taken when
// they were last written.
func (s *Service) UpdateOrganizer(ctx context.Context, actor camppolicy.Viewer, id string, in OrganizerInput) (models.Organizer, error) {
	if err := requireAdmin(actor, "update organizer"); err != nil {
		return models.Organizer{}, err
	}
	cur, err := s.GetOrganizer(ctx, id)
	if err != nil {
		return models.Organizer{}, err
	}
	o, err := parseOrganizerInput(in)
	if err != nil {
		return models.Organizer{}, err
	}
	o.ID = cur.ID
	o.CreatedAt = cur.CreatedAt
	o.UpdatedAt = s.now()

	ctx, cancel := s.short(ctx, "organizers.update")
	defer cancel()
	if err := s.organizers.Update(ctx, o); err != nil {
		return models.Organizer{}, organizerErr("organizers.update", err)
	}
	s.log.Info("organizer updated", zap.String("organizer_id", id), zap.String("actor_id", actor.UID))
	return o, nil
}

// DeleteOrganizer removes the profile only; camps referencing it are left
// as they are.
func (s *Service) DeleteOrganizer(ctx context.Context, actor camppolicy.Viewer, id string) error {
	if err := requireAdmin(actor, "delete organizer"); err != nil {
		return err
	}
	ctx, cancel := s.short(ctx, "organizers.delete")
	defer cancel()
	if err := s.organizers.Delete(ctx, id); err != nil {
		return apperr.Collaborator("organizers.delete", fmt.Errorf("organizer %s: %w", id, err))
	}
	s.log.Info("organizer deleted", zap.String("organizer_id", id), zap.String("actor_id", actor.UID))
	return nil
}
