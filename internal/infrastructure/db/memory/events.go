package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/ports"
)

type EventRepository struct {
	mu     sync.RWMutex
	events map[string]*domain.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]*domain.Event)}
}

func (r *EventRepository) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *e
	stored.ID = uuid.NewString()
	r.events[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *EventRepository) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	out := *e
	return &out, nil
}

func (r *EventRepository) List(_ context.Context, f ports.EventFilter) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Event, 0)
	for _, e := range r.events {
		if f.FromDate != "" && e.Date < f.FromDate {
			continue
		}
		if f.Town != "" && e.Town != f.Town {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if f.CreatedBy != "" && e.CreatedBy != f.CreatedBy {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *EventRepository) Replace(_ context.Context, e *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[e.ID]; !ok {
		return domain.ErrEventNotFound
	}
	stored := *e
	r.events[e.ID] = &stored
	return nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

// Len returns the number of stored events.
func (r *EventRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}
