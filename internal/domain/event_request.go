package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RequestStatus is the state of a join request. A missing request is the implicit "none" state.
type RequestStatus int

const (
	RequestStatusPending  RequestStatus = 1
	RequestStatusAccepted RequestStatus = 2
	RequestStatusRejected RequestStatus = 3
)

// Active reports whether the request blocks a new request for the same event and guest.
func (s RequestStatus) Active() bool {
	return s == RequestStatusPending || s == RequestStatusAccepted
}

// Terminal reports whether the owner has already decided the request.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusAccepted || s == RequestStatusRejected
}

func (s RequestStatus) String() string {
	switch s {
	case RequestStatusPending:
		return "pending"
	case RequestStatusAccepted:
		return "accepted"
	case RequestStatusRejected:
		return "rejected"
	}
	return fmt.Sprintf("RequestStatus(%d)", int(s))
}

// Decision is the owner's answer to a pending request.
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// ParseDecision accepts "accept" or "reject" in any case.
func ParseDecision(s string) (Decision, error) {
	switch d := Decision(strings.ToLower(strings.TrimSpace(s))); d {
	case DecisionAccept, DecisionReject:
		return d, nil
	}
	return "", fmt.Errorf("%w: decision must be %q or %q", ErrInvalidInput, DecisionAccept, DecisionReject)
}

// Status returns the request status the decision transitions to.
func (d Decision) Status() RequestStatus {
	if d == DecisionAccept {
		return RequestStatusAccepted
	}
	return RequestStatusRejected
}

// EventRequest is a guest's request to join an event. OwnerID is a snapshot of the event owner at request time.
// swagger:model EventRequest
type EventRequest struct {
	ID          int64         `json:"id"`
	EventID     int64         `json:"event_id"`
	GuestID     string        `json:"guest_id"`
	OwnerID     string        `json:"owner_id"`
	StatusID    RequestStatus `json:"status_id"`
	RequestedAt time.Time     `json:"requested_at"`
	DecidedAt   *time.Time    `json:"decided_at,omitempty"`
}

// NewEventRequest returns a pending request. ID is set by the repository on create.
func NewEventRequest(eventID int64, guestID, ownerID string, requestedAt time.Time) *EventRequest {
	return &EventRequest{
		EventID:     eventID,
		GuestID:     guestID,
		OwnerID:     ownerID,
		StatusID:    RequestStatusPending,
		RequestedAt: requestedAt,
	}
}

// Decide moves a pending request to the status implied by d.
// It returns ErrConflict when the request was already decided.
func (r *EventRequest) Decide(d Decision, at time.Time) error {
	if r.StatusID != RequestStatusPending {
		return fmt.Errorf("%w: request is already %s", ErrConflict, r.StatusID)
	}
	r.StatusID = d.Status()
	r.DecidedAt = &at
	return nil
}

// EventRequestRepository defines storage operations for join requests.
type EventRequestRepository interface {
	// Create inserts a pending request. It returns ErrConflict when an active request already exists for the pair.
	Create(ctx context.Context, req *EventRequest) error
	// GetByIDForUpdate loads a request and locks its row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int64) (*EventRequest, error)
	GetActiveByEventAndGuest(ctx context.Context, eventID int64, guestID string) (*EventRequest, error)
	GetLatestByEventAndGuest(ctx context.Context, eventID int64, guestID string) (*EventRequest, error)
	UpdateStatus(ctx context.Context, req *EventRequest) error
	ListByEventID(ctx context.Context, eventID int64) ([]*EventRequest, error)
	ListByGuestID(ctx context.Context, guestID string) ([]*EventRequest, error)
}

// RequestService manages join requests between guests and event owners.
type RequestService interface {
	CreateRequest(ctx context.Context, eventID int64, guestID string) (*EventRequest, error)
	Decide(ctx context.Context, requestID int64, ownerID string, decision Decision) (*EventRequest, error)
	ListEventRequests(ctx context.Context, eventID int64, ownerID string) ([]*EventRequest, error)
	ListMyRequests(ctx context.Context, guestID string) ([]*EventRequest, error)
}
