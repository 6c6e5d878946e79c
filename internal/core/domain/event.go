package domain

import (
	"strings"
	"time"
)

// Event is a dated happening published by a business account.
type Event struct {
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

func (e *Event) OwnerID() string { return e.CreatedBy }

// Validate checks the fields every stored event must carry.
func (e *Event) Validate() error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return Invalid("title is required")
	case e.Town == "":
		return Invalid("town is required")
	case !ValidTown(e.Town):
		return Invalid("town is not a supported town")
	case e.Category == "":
		return Invalid("category is required")
	case !ValidCategory(e.Category):
		return Invalid("category is not a supported category")
	case e.Date == "":
		return Invalid("date is required")
	case !ValidDate(e.Date):
		return Invalid("date must be formatted as YYYY-MM-DD")
	case e.CreatedBy == "":
		return Invalid("event has no creator")
	}
	return nil
}

// EventPatch carries a partial update; nil fields are left untouched.
type EventPatch struct {
	Title       *string
	Town        *string
	Category    *string
	Date        *string
	Time        *string
	EndTime     *string
	Location    *string
	Description *string
	ImageURL    *string
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Town == nil && p.Category == nil && p.Date == nil &&
		p.Time == nil && p.EndTime == nil && p.Location == nil &&
		p.Description == nil && p.ImageURL == nil
}

// Apply merges the provided fields into e.
func (p EventPatch) Apply(e *Event) {
	set(&e.Title, p.Title)
	set(&e.Town, p.Town)
	set(&e.Category, p.Category)
	set(&e.Date, p.Date)
	set(&e.Time, p.Time)
	set(&e.EndTime, p.EndTime)
	set(&e.Location, p.Location)
	set(&e.Description, p.Description)
	set(&e.ImageURL, p.ImageURL)
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
