package domain

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// EventStatus is the lifecycle state of an event.
type EventStatus int

// EventStatusOpen is assigned on creation. It is currently the only defined state.
const EventStatusOpen EventStatus = 1

// Valid reports whether s is a known status.
func (s EventStatus) Valid() bool {
	return s == EventStatusOpen
}

const maxTitleLen = 100

var hourRegexp = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Event represents a user-created sporting activity others may discover and request to join.
// swagger:model Event
type Event struct {
	ID           int64       `json:"id"`
	OwnerID      string      `json:"owner_id"`
	SportID      int         `json:"sport_id"`
	ExperienceID int         `json:"experience_id,omitempty"`
	StatusID     EventStatus `json:"status_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Date         time.Time   `json:"date"`
	Hour         string      `json:"hour"`
	City         string      `json:"city"`
	Country      string      `json:"country"`
	ImageURL     string      `json:"image_url"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// EventFields holds the owner-editable fields of an event. ExperienceID 0 means "any level".
type EventFields struct {
	SportID      int
	ExperienceID int
	Title        string
	Description  string
	Date         time.Time
	Hour         string
	City         string
	Country      string
	ImageURL     string
}

// Normalize trims surrounding whitespace from text fields and truncates Date to the day.
func (f EventFields) Normalize() EventFields {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Hour = strings.TrimSpace(f.Hour)
	f.City = strings.TrimSpace(f.City)
	f.Country = strings.TrimSpace(f.Country)
	f.ImageURL = strings.TrimSpace(f.ImageURL)
	if !f.Date.IsZero() {
		y, m, d := f.Date.Date()
		f.Date = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return f
}

// Validate returns an error wrapping ErrInvalidInput listing every violated rule.
func (f EventFields) Validate() error {
	var errs []string
	if f.Title == "" {
		errs = append(errs, "title is required")
	} else if len([]rune(f.Title)) > maxTitleLen {
		errs = append(errs, fmt.Sprintf("title must be at most %d characters", maxTitleLen))
	}
	if f.City == "" {
		errs = append(errs, "city is required")
	}
	if f.Country == "" {
		errs = append(errs, "country is required")
	}
	if f.SportID <= 0 {
		errs = append(errs, "sport_id must be positive")
	}
	if f.ExperienceID < 0 {
		errs = append(errs, "experience_id must not be negative")
	}
	if f.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	if f.Hour != "" && !hourRegexp.MatchString(f.Hour) {
		errs = append(errs, "hour must be in HH:MM format")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(errs, "; "))
	}
	return nil
}

// NewEvent returns an open Event owned by ownerID. ID is set by the repository on create.
func NewEvent(ownerID string, f EventFields, createdAt time.Time) *Event {
	e := &Event{
		OwnerID:   ownerID,
		StatusID:  EventStatusOpen,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	e.Apply(f)
	return e
}

// Apply overwrites the mutable fields of e. OwnerID and StatusID are left untouched.
func (e *Event) Apply(f EventFields) {
	e.SportID = f.SportID
	e.ExperienceID = f.ExperienceID
	e.Title = f.Title
	e.Description = f.Description
	e.Date = f.Date
	e.Hour = f.Hour
	e.City = f.City
	e.Country = f.Country
	e.ImageURL = f.ImageURL
}

// Fields returns the mutable fields of e.
func (e *Event) Fields() EventFields {
	return EventFields{
		SportID:      e.SportID,
		ExperienceID: e.ExperienceID,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date,
		Hour:         e.Hour,
		City:         e.City,
		Country:      e.Country,
		ImageURL:     e.ImageURL,
	}
}

// EventFilter narrows ListAllEvents. Zero values mean "no constraint".
// Query is matched case-insensitively against title, description, city and country (any of them);
// the remaining fields are combined with AND.
type EventFilter struct {
	Query        string
	SportID      *int
	ExperienceID *int
	DateFrom     *time.Time
	DateTo       *time.Time
}

// Validate checks the date range.
func (f EventFilter) Validate() error {
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return fmt.Errorf("%w: date_to must be on or after date_from", ErrInvalidInput)
	}
	return nil
}

// EventSummary is a listing row annotated for the caller.
// swagger:model EventSummary
type EventSummary struct {
	*Event
	IsFavorite bool `json:"is_favorite"`
}

// JoinStatus projects the caller's most recent request against an event.
// swagger:model JoinStatus
type JoinStatus struct {
	IsJoined bool          `json:"is_joined"`
	StatusID RequestStatus `json:"status_id"`
}

// EventDetail is an event enriched with its owner's public profile and the caller's relation to it.
// swagger:model EventDetail
type EventDetail struct {
	*Event
	IsFavorite bool               `json:"is_favorite"`
	Owner      *PublicUserProfile `json:"owner"`
	JoinStatus *JoinStatus        `json:"join_status"`
}

// EventLocation is the lightweight projection used to plot events on a map.
// swagger:model EventLocation
type EventLocation struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	SportID int       `json:"sport_id"`
	City    string    `json:"city"`
	Country string    `json:"country"`
	Date    time.Time `json:"date"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id int64) error
	ListByOwnerID(ctx context.Context, ownerID string) ([]*Event, error)
	// List returns one page of events matching f plus the total number of matches.
	List(ctx context.Context, f EventFilter, p PaginationParams) ([]*Event, int, error)
	ListLocations(ctx context.Context) ([]*EventLocation, error)
}

// EventService defines the business logic for creating, browsing and managing events.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	DeleteEvent(ctx context.Context, eventID int64, callerID string) error
	ListOwnEvents(ctx context.Context, callerID string) ([]*Event, error)
	ListEventsByUser(ctx context.Context, userID string) ([]*Event, error)
	ListAllEvents(ctx context.Context, filter EventFilter, page PaginationParams, callerID string) (*PagedResult[*EventSummary], error)
	GetEventDetail(ctx context.Context, eventID int64, callerID string) (*EventDetail, error)
	UpdateEvent(ctx context.Context, eventID int64, callerID string, fields EventFields) (*Event, error)
	ListEventsForMap(ctx context.Context) ([]*EventLocation, error)
}
