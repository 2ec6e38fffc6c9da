package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"together/internal/domain"
)

type eventService struct {
	uow            domain.UnitOfWork
	contextTimeout time.Duration
	now            func() time.Time
}

func NewEventService(uow domain.UnitOfWork, timeout time.Duration) domain.EventService {
	return &eventService{
		uow:            uow,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OwnerID == "" {
		return fmt.Errorf("%w: event owner is required", domain.ErrInvalidInput)
	}
	fields := event.Fields().Normalize()
	if err := fields.Validate(); err != nil {
		return err
	}

	now := s.now().UTC()
	event.Apply(fields)
	event.StatusID = domain.EventStatusOpen
	event.CreatedAt = now
	event.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(tx domain.Tx) error {
		if err := tx.Events().Create(ctx, event); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		return nil
	})
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID int64, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.uow.WithinTx(ctx, func(tx domain.Tx) error {
		event, err := tx.Events().GetByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if event.OwnerID != callerID {
			return fmt.Errorf("%w: only the owner can delete this event", domain.ErrForbidden)
		}
		if err := tx.Events().Delete(ctx, eventID); err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		return nil
	})
}

func (s *eventService) ListOwnEvents(ctx context.Context, callerID string) ([]*domain.Event, error) {
	return s.listByOwner(ctx, callerID)
}

func (s *eventService) ListEventsByUser(ctx context.Context, userID string) ([]*domain.Event, error) {
	return s.listByOwner(ctx, userID)
}

func (s *eventService) listByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var events []*domain.Event
	err := s.uow.WithinTx(ctx, func(tx domain.Tx) error {
		var err error
		events, err = tx.Events().ListByOwnerID(ctx, ownerID)
		if err != nil {
			return fmt.Errorf("list events by owner: %w", err)
		}
		return nil
	})
	return events, err
}

// ListAllEvents returns one page of filtered events. The caller's favorite ids are loaded once
// and each row is annotated by set membership.
func (s *eventService) ListAllEvents(ctx context.Context, filter domain.EventFilter, page domain.PaginationParams, callerID string) (*domain.PagedResult[*domain.EventSummary], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := filter.Validate(); err != nil {
		return nil, err
	}
	page = page.Normalize()

	var (
		events []*domain.Event
		total  int
		favIDs []int64
	)
	err := s.uow.WithinTx(ctx, func(tx domain.Tx) error {
		var err error
		events, total, err = tx.Events().List(ctx, filter, page)
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		if callerID == "" {
			return nil
		}
		favIDs, err = tx.Favorites().ListEventIDsByUser(ctx, callerID)
		if err != nil {
			return fmt.Errorf("list favorite ids: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	favorites := make(map[int64]struct{}, len(favIDs))
	for _, id := range favIDs {
		favorites[id] = struct{}{}
	}
	data := make([]*domain.EventSummary, 0, len(events))
	for _, e := range events {
		_, fav := favorites[e.ID]
		data = append(data, &domain.EventSummary{Event: e, IsFavorite: fav})
	}
	return &domain.PagedResult[*domain.EventSummary]{
		PageNumber: page.Page,
		PageSize:   page.PageSize,
		TotalCount: total,
		Data:       data,
	}, nil
}

// GetEventDetail always reads the committed event row, so a deleted event is NotFound
// as soon as the delete commits.
func (s *eventService) GetEventDetail(ctx context.Context, eventID int64, callerID string) (*domain.EventDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var detail *domain.EventDetail
	err := s.uow.WithinTx(ctx, func(tx domain.Tx) error {
		event, err := tx.Events().GetByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		detail = &domain.EventDetail{Event: event}

		owner, err := tx.Users().GetByID(ctx, event.OwnerID)
		switch {
		case err == nil:
			detail.Owner = owner.Public()
		case !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("get owner profile: %w", err)
		}

		if callerID == "" {
			return nil
		}
		detail.IsFavorite, err = tx.Favorites().Exists(ctx, callerID, eventID)
		if err != nil {
			return fmt.Errorf("check favorite: %w", err)
		}
		latest, err := tx.Requests().GetLatestByEventAndGuest(ctx, eventID, callerID)
		switch {
		case err == nil:
			detail.JoinStatus = &domain.JoinStatus{IsJoined: true, StatusID: latest.StatusID}
		case !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("get join status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID int64, callerID string, fields domain.EventFields) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	fields = fields.Normalize()
	var event *domain.Event
	err := s.uow.WithinTx(ctx, func(tx domain.Tx) error {
		var err error
		event, err = tx.Events().GetByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if event.OwnerID != callerID {
			return fmt.Errorf("%w: only the owner can update this event", domain.ErrForbidden)
		}
		if err := fields.Validate(); err != nil {
			return err
		}
		event.Apply(fields)
		event.UpdatedAt = s.now().UTC()
		if err := tx.Events().Update(ctx, event); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEventsForMap(ctx context.Context) ([]*domain.EventLocation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var locations []*domain.EventLocation
	err := s.uow.WithinTx(ctx, func(tx domain.Tx) error {
		var err error
		locations, err = tx.Events().ListLocations(ctx)
		if err != nil {
			return fmt.Errorf("list event locations: %w", err)
		}
		return nil
	})
	return locations, err
}
