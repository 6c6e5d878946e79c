package ports

import (
	"context"

	"github.com/townboard/townboard-api/internal/core/domain"
)

// EventFilter narrows an event listing. Zero values mean "no filter".
type EventFilter struct {
	FromDate  string // date >= FromDate (YYYY-MM-DD)
	Town      string
	Category  string
	CreatedBy string
}

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// List returns matching events ordered by date, then time, ascending.
	List(ctx context.Context, filter EventFilter) ([]*domain.Event, error)
	Replace(ctx context.Context, e *domain.Event) error
	Delete(ctx context.Context, id string) error
}
