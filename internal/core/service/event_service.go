package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/ports"
)

type EventService struct {
	repo   ports.EventRepository
	markup *MarkupGuard
	loc    *time.Location
	now    func() time.Time
	log    zerolog.Logger
}

// NewEventService returns an EventService. loc decides what "today" means
// for the default listing; nil means UTC.
func NewEventService(repo ports.EventRepository, markup *MarkupGuard, loc *time.Location, log zerolog.Logger) *EventService {
	if markup == nil {
		markup = NewMarkupGuard()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &EventService{repo: repo, markup: markup, loc: loc, now: time.Now, log: log}
}

// Create stamps the caller as creator and persists a new event. The role
// gate runs upstream; the service re-checks it so direct callers are held
// to the same rule.
func (s *EventService) Create(ctx context.Context, in ports.CreateEventInput, p domain.Principal) (*domain.Event, error) {
	if !p.Authenticated() {
		return nil, domain.ErrMissingPrincipal
	}
	if p.Role != domain.RoleBusiness {
		return nil, domain.ErrRoleRequired
	}

	if err := s.markup.check(
		field("title", &in.Title),
		field("location", &in.Location),
		field("description", &in.Description),
	); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	event := &domain.Event{
		Title:       in.Title,
		Town:        in.Town,
		Category:    in.Category,
		Date:        in.Date,
		Time:        in.Time,
		EndTime:     in.EndTime,
		Location:    in.Location,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatedBy:   p.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create event")
		return nil, err
	}

	s.log.Info().Str("event_id", created.ID).Str("created_by", p.UserID).Msg("event created")
	return created, nil
}

// List returns upcoming events, soonest first.
func (s *EventService) List(ctx context.Context, in ports.ListEventsInput) ([]*domain.Event, error) {
	filter := ports.EventFilter{
		FromDate: in.FromDate,
		Town:     in.Town,
		Category: in.Category,
	}
	if filter.FromDate == "" {
		filter.FromDate = domain.Today(s.now(), s.loc)
	} else if !domain.ValidDate(filter.FromDate) {
		return nil, domain.Invalid("from must be formatted as YYYY-MM-DD")
	}
	if filter.Town != "" && !domain.ValidTown(filter.Town) {
		return nil, domain.Invalid("town is not a supported town")
	}
	if filter.Category != "" && !domain.ValidCategory(filter.Category) {
		return nil, domain.Invalid("category is not a supported category")
	}
	return s.repo.List(ctx, filter)
}

// ListMine returns every event the caller created, past ones included.
func (s *EventService) ListMine(ctx context.Context, p domain.Principal) ([]*domain.Event, error) {
	if !p.Authenticated() {
		return nil, domain.ErrMissingPrincipal
	}
	return s.repo.List(ctx, ports.EventFilter{CreatedBy: p.UserID})
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.FindByID(ctx, id)
}

// CheckOwner confirms p may mutate the event without touching it. Update and
// Delete repeat the check, so calling it first is optional.
func (s *EventService) CheckOwner(ctx context.Context, id string, p domain.Principal) error {
	_, err := loadOwned(ctx, id, p, s.repo.FindByID)
	return err
}

func (s *EventService) Update(ctx context.Context, id string, patch domain.EventPatch, p domain.Principal) (*domain.Event, error) {
	event, err := loadOwned(ctx, id, p, s.repo.FindByID)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, domain.Invalid("no fields to update")
	}

	if err := s.markup.check(
		field("title", patch.Title),
		field("location", patch.Location),
		field("description", patch.Description),
	); err != nil {
		return nil, err
	}

	updated := *event
	patch.Apply(&updated)
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.now().UTC()

	if err := s.repo.Replace(ctx, &updated); err != nil {
		return nil, err
	}

	s.log.Info().Str("event_id", id).Str("user_id", p.UserID).Msg("event updated")
	return &updated, nil
}

func (s *EventService) Delete(ctx context.Context, id string, p domain.Principal) error {
	if _, err := loadOwned(ctx, id, p, s.repo.FindByID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("event_id", id).Str("user_id", p.UserID).Msg("event deleted")
	return nil
}
