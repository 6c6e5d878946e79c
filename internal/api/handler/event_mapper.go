package handler

import (
	"github.com/townboard/townboard-api/internal/core/domain"
	"github.com/townboard/townboard-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateEventInput(req createEventRequest) ports.CreateEventInput {
	return ports.CreateEventInput{
		Title:       req.Title,
		Town:        req.Town,
		Category:    req.Category,
		Date:        req.Date,
		Time:        req.Time,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
}

func toEventPatch(req updateEventRequest) domain.EventPatch {
	return domain.EventPatch{
		Title:       req.Title,
		Town:        req.Town,
		Category:    req.Category,
		Date:        req.Date,
		Time:        req.Time,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
}

// --- Service result → HTTP response ---

func toEventResponse(e *domain.Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Town:        e.Town,
		Category:    e.Category,
		Date:        e.Date,
		Time:        e.Time,
		EndTime:     e.EndTime,
		Location:    e.Location,
		Description: e.Description,
		ImageURL:    e.ImageURL,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt.UTC(),
		UpdatedAt:   e.UpdatedAt.UTC(),
	}
}

func toListEventsResponse(events []*domain.Event) listEventsResponse {
	items := make([]eventResponse, len(events))
	for i, e := range events {
		items[i] = toEventResponse(e)
	}
	return listEventsResponse{Data: items}
}
