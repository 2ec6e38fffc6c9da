package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"together/internal/domain"
)

type requestService struct {
	uow            domain.UnitOfWork
	notifier       domain.Notifier
	contextTimeout time.Duration
	now            func() time.Time
}

// NewRequestService returns a RequestService. Notifications are sent only after the
// transaction that changed the request has committed.
func NewRequestService(uow domain.UnitOfWork, notifier domain.Notifier, timeout time.Duration) domain.RequestService {
	return &requestService{
		uow:            uow,
		notifier:       notifier,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *requestService) CreateRequest(ctx context.Context, eventID int64, guestID string) (*domain.EventRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if guestID == "" {
		return nil, fmt.Errorf("%w: guest is required", domain.ErrInvalidInput)
	}

	var (
		req   *domain.EventRequest
		event *domain.Event
	)
	err := s.uow.WithinTx(ctx, func(tx domain.Tx) error {
		var err error
		event, err = tx.Events().GetByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if event.OwnerID == guestID {
			return fmt.Errorf("%w: owners cannot request to join their own event", domain.ErrInvalidInput)
		}

		_, err = tx.Requests().GetActiveByEventAndGuest(ctx, eventID, guestID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: an active request already exists for this event", domain.ErrConflict)
		case !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("get active request: %w", err)
		}

		req = domain.NewEventRequest(event.ID, guestID, event.OwnerID, s.now().UTC())
		if err := tx.Requests().Create(ctx, req); err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, &domain.Notification{
		Type:        domain.NotificationRequestCreated,
		RecipientID: event.OwnerID,
		EventID:     event.ID,
		EventTitle:  event.Title,
		RequestID:   req.ID,
		GuestID:     req.GuestID,
		StatusID:    req.StatusID,
		OccurredAt:  req.RequestedAt,
	})
	return req, nil
}

// Decide applies the owner's decision to a pending request. The request row stays locked
// from the read until commit, so two concurrent decisions cannot both succeed.
func (s *requestService) Decide(ctx context.Context, requestID int64, ownerID string, decision domain.Decision) (*domain.EventRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	d, err := domain.ParseDecision(string(decision))
	if err != nil {
		return nil, err
	}

	var (
		req   *domain.EventRequest
		event *domain.Event
	)
	err = s.uow.WithinTx(ctx, func(tx domain.Tx) error {
		var err error
		req, err = tx.Requests().GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return fmt.Errorf("get request: %w", err)
		}
		event, err = tx.Events().GetByID(ctx, req.EventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if event.OwnerID != ownerID {
			return fmt.Errorf("%w: only the event owner can decide this request", domain.ErrForbidden)
		}
		if err := req.Decide(d, s.now().UTC()); err != nil {
			return err
		}
		if err := tx.Requests().UpdateStatus(ctx, req); err != nil {
			return fmt.Errorf("update request status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, &domain.Notification{
		Type:        domain.NotificationRequestDecided,
		RecipientID: req.GuestID,
		EventID:     event.ID,
		EventTitle:  event.Title,
		RequestID:   req.ID,
		GuestID:     req.GuestID,
		StatusID:    req.StatusID,
		OccurredAt:  *req.DecidedAt,
	})
	return req, nil
}

func (s *requestService) ListEventRequests(ctx context.Context, eventID int64, ownerID string) ([]*domain.EventRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var reqs []*domain.EventRequest
	err := s.uow.WithinTx(ctx, func(tx domain.Tx) error {
		event, err := tx.Events().GetByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if event.OwnerID != ownerID {
			return fmt.Errorf("%w: only the owner can list requests for this event", domain.ErrForbidden)
		}
		reqs, err = tx.Requests().ListByEventID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("list requests: %w", err)
		}
		return nil
	})
	return reqs, err
}

func (s *requestService) ListMyRequests(ctx context.Context, guestID string) ([]*domain.EventRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var reqs []*domain.EventRequest
	err := s.uow.WithinTx(ctx, func(tx domain.Tx) error {
		var err error
		reqs, err = tx.Requests().ListByGuestID(ctx, guestID)
		if err != nil {
			return fmt.Errorf("list requests: %w", err)
		}
		return nil
	})
	return reqs, err
}
