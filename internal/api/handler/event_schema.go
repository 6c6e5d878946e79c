package handler

import "time"

type createEventRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Town        string `json:"town"        validate:"required"`
	Category    string `json:"category"    validate:"required"`
	Date        string `json:"date"        validate:"required,datetime=2006-01-02"`
	Time        string `json:"time"        validate:"omitempty,datetime=15:04"`
	EndTime     string `json:"endTime"     validate:"omitempty,datetime=15:04"`
	Location    string `json:"location"    validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	ImageURL    string `json:"imageUrl"    validate:"omitempty,url"`
}

// updateEventRequest carries a partial update; absent fields stay untouched.
type updateEventRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=200"`
	Town        *string `json:"town"        validate:"omitempty,min=1"`
	Category    *string `json:"category"    validate:"omitempty,min=1"`
	Date        *string `json:"date"        validate:"omitempty,datetime=2006-01-02"`
	Time        *string `json:"time"        validate:"omitempty,datetime=15:04"`
	EndTime     *string `json:"endTime"     validate:"omitempty,datetime=15:04"`
	Location    *string `json:"location"    validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	ImageURL    *string `json:"imageUrl"    validate:"omitempty,url"`
}

// listEventsQuery is bound from the query string of GET /events.
type listEventsQuery struct {
	From     string `query:"from"     validate:"omitempty,datetime=2006-01-02"`
	Town     string `query:"town"`
	Category string `query:"category"`
}

type eventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Town        string    `json:"town"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Time        string    `json:"time,omitempty"`
	EndTime     string    `json:"endTime,omitempty"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type listEventsResponse struct {
	Data []eventResponse `json:"data"`
}
