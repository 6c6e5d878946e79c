package ports

import (
	"context"

	"github.com/townboard/townboard-api/internal/core/domain"
)

// CreateEventInput carries the fields a business supplies for a new event.
type CreateEventInput struct {
	Title       string
	Town        string
	Category    string
	Date        string
	Time        string
	EndTime     string
	Location    string
	Description string
	ImageURL    string
}

// ListEventsInput carries the public listing query. FromDate defaults to today.
type ListEventsInput struct {
	FromDate string
	Town     string
	Category string
}

type EventService interface {
	Create(ctx context.Context, in CreateEventInput, p domain.Principal) (*domain.Event, error)
	List(ctx context.Context, in ListEventsInput) ([]*domain.Event, error)
	ListMine(ctx context.Context, p domain.Principal) ([]*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	// CheckOwner fails with NotFound or Forbidden unless p may mutate the event.
	CheckOwner(ctx context.Context, id string, p domain.Principal) error
	Update(ctx context.Context, id string, patch domain.EventPatch, p domain.Principal) (*domain.Event, error)
	Delete(ctx context.Context, id string, p domain.Principal) error
}
