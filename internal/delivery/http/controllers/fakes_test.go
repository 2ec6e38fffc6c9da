package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"together/internal/delivery/http/helpers"
	"together/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// decodeEnvelope decodes the response envelope and, when data is non-nil, its data field.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if data != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, data))
	}
	return envelope
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err error

	createdEvent  *domain.Event
	listResult    *domain.PagedResult[*domain.EventSummary]
	lastFilter    domain.EventFilter
	lastPage      domain.PaginationParams
	lastCallerID  string
	lastUserID    string
	lastEventID   int64
	lastFields    domain.EventFields
	events        []*domain.Event
	detail        *domain.EventDetail
	updated       *domain.Event
	locations     []*domain.EventLocation
	deleteCalled  bool
	listAllCalled bool
}

func (f *fakeEventService) CreateEvent(_ context.Context, event *domain.Event) error {
	f.createdEvent = event
	if f.err != nil {
		return f.err
	}
	event.ID = 101
	event.StatusID = domain.EventStatusOpen
	return nil
}

func (f *fakeEventService) DeleteEvent(_ context.Context, eventID int64, callerID string) error {
	f.deleteCalled = true
	f.lastEventID = eventID
	f.lastCallerID = callerID
	return f.err
}

func (f *fakeEventService) ListOwnEvents(_ context.Context, callerID string) ([]*domain.Event, error) {
	f.lastCallerID = callerID
	return f.events, f.err
}

func (f *fakeEventService) ListEventsByUser(_ context.Context, userID string) ([]*domain.Event, error) {
	f.lastUserID = userID
	return f.events, f.err
}

func (f *fakeEventService) ListAllEvents(_ context.Context, filter domain.EventFilter, page domain.PaginationParams, callerID string) (*domain.PagedResult[*domain.EventSummary], error) {
	f.listAllCalled = true
	f.lastFilter = filter
	f.lastPage = page
	f.lastCallerID = callerID
	if f.err != nil {
		return nil, f.err
	}
	return f.listResult, nil
}

func (f *fakeEventService) GetEventDetail(_ context.Context, eventID int64, callerID string) (*domain.EventDetail, error) {
	f.lastEventID = eventID
	f.lastCallerID = callerID
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

func (f *fakeEventService) UpdateEvent(_ context.Context, eventID int64, callerID string, fields domain.EventFields) (*domain.Event, error) {
	f.lastEventID = eventID
	f.lastCallerID = callerID
	f.lastFields = fields
	if f.err != nil {
		return nil, f.err
	}
	return f.updated, nil
}

func (f *fakeEventService) ListEventsForMap(_ context.Context) ([]*domain.EventLocation, error) {
	return f.locations, f.err
}

// fakeRequestService implements domain.RequestService for handler tests.
type fakeRequestService struct {
	err          error
	result       *domain.EventRequest
	list         []*domain.EventRequest
	lastEventID  int64
	lastUserID   string
	lastReqID    int64
	lastDecision domain.Decision
	decideCalled bool
}

func (f *fakeRequestService) CreateRequest(_ context.Context, eventID int64, guestID string) (*domain.EventRequest, error) {
	f.lastEventID = eventID
	f.lastUserID = guestID
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeRequestService) Decide(_ context.Context, requestID int64, ownerID string, decision domain.Decision) (*domain.EventRequest, error) {
	f.decideCalled = true
	f.lastReqID = requestID
	f.lastUserID = ownerID
	f.lastDecision = decision
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeRequestService) ListEventRequests(_ context.Context, eventID int64, ownerID string) ([]*domain.EventRequest, error) {
	f.lastEventID = eventID
	f.lastUserID = ownerID
	return f.list, f.err
}

func (f *fakeRequestService) ListMyRequests(_ context.Context, guestID string) ([]*domain.EventRequest, error) {
	f.lastUserID = guestID
	return f.list, f.err
}

// fakeFavoriteService implements domain.FavoriteService for handler tests.
type fakeFavoriteService struct {
	err         error
	marked      map[int64]bool
	events      []*domain.Event
	lastUserID  string
	lastEventID int64
}

func (f *fakeFavoriteService) Toggle(_ context.Context, userID string, eventID int64) (*domain.FavoriteResult, error) {
	f.lastUserID = userID
	f.lastEventID = eventID
	if f.err != nil {
		return nil, f.err
	}
	if f.marked == nil {
		f.marked = make(map[int64]bool)
	}
	f.marked[eventID] = !f.marked[eventID]
	return &domain.FavoriteResult{EventID: eventID, IsFavorite: f.marked[eventID]}, nil
}

func (f *fakeFavoriteService) ListFavorites(_ context.Context, userID string) ([]*domain.Event, error) {
	f.lastUserID = userID
	return f.events, f.err
}

// fakeReferenceService implements domain.ReferenceService for handler tests.
type fakeReferenceService struct {
	err    error
	sports []*domain.Sport
	levels []*domain.ExperienceLevel
}

func (f *fakeReferenceService) ListSports(_ context.Context) ([]*domain.Sport, error) {
	return f.sports, f.err
}

func (f *fakeReferenceService) ListExperienceLevels(_ context.Context) ([]*domain.ExperienceLevel, error) {
	return f.levels, f.err
}

// fakeEquipmentService implements domain.EquipmentService for handler tests.
type fakeEquipmentService struct {
	err         error
	catalog     []*domain.Equipment
	owned       []*domain.UserEquipment
	lastSportID *int
	lastUserID  string
	lastItemID  int
}

func (f *fakeEquipmentService) ListEquipment(_ context.Context, sportID *int) ([]*domain.Equipment, error) {
	f.lastSportID = sportID
	return f.catalog, f.err
}

func (f *fakeEquipmentService) AddUserEquipment(_ context.Context, userID string, equipmentID int) ([]*domain.UserEquipment, error) {
	f.lastUserID, f.lastItemID = userID, equipmentID
	return f.owned, f.err
}

func (f *fakeEquipmentService) ListUserEquipment(_ context.Context, userID string) ([]*domain.UserEquipment, error) {
	f.lastUserID = userID
	return f.owned, f.err
}
