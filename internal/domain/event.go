package domain

import (
	"context"
	"fmt"
	"time"
)

// Event categories, matching the sidebar legend of the calendar UI.
const (
	CategoryClasses  = "classes"
	CategoryMeetings = "meetings"
	CategoryHomework = "homework"
	CategorySocial   = "social"
)

// ValidCategory reports whether c is a known event category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryClasses, CategoryMeetings, CategoryHomework, CategorySocial:
		return true
	}
	return false
}

// Event is one scheduled time block owned by a single user. TeamPIN is nil
// for personal events; when set, the event counts toward that team's
// busy-ness heatmap.
// swagger:model Event
type Event struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	TeamPIN   *string   `json:"team_pin"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEvent returns a new Event. ID is assigned by the service on create.
func NewEvent(ownerID string, teamPIN *string, title, category string, start, end, createdAt time.Time) *Event {
	return &Event{
		OwnerID:   ownerID,
		TeamPIN:   teamPIN,
		Title:     title,
		Category:  category,
		Start:     start,
		End:       end,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// Validate checks the fields a persisted event must have. Unlike the
// aggregation path, which tolerates zero-duration intervals, a stored event
// must span at least one instant: Start must be strictly before End.
func (e *Event) Validate() error {
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !ValidCategory(e.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, e.Category)
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !e.Start.Before(e.End) {
		return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}
	return nil
}

// EventUpdate carries the fields an owner may change on an existing event.
// Nil fields are left untouched.
type EventUpdate struct {
	Title    *string
	Category *string
	Start    *time.Time
	End      *time.Time
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	ListByTeamPIN(ctx context.Context, pin string) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for event CRUD. Updates are a
// first-class operation; the service never models an edit as a delete plus
// a recreate.
type EventService interface {
	Create(ctx context.Context, event *Event) (*Event, error)
	Update(ctx context.Context, eventID, callerID string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, eventID, callerID string) error
	ListMine(ctx context.Context, ownerID string) ([]*Event, error)
	ListByTeam(ctx context.Context, pin, callerID string) ([]*Event, error)
}
