package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"together/internal/domain"
)

const timeout = 5 * time.Second

func newTestEventService(store *fakeStore) *eventService {
	svc := NewEventService(store, timeout).(*eventService)
	svc.now = func() time.Time { return time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		event   *domain.Event
		repoErr error
		wantErr error
		assert  func(t *testing.T, store *fakeStore, event *domain.Event)
	}{
		{
			name: "success",
			event: &domain.Event{
				OwnerID: "u1", SportID: 2, Title: "  Morning Run ", City: "Sofia", Country: "BG",
				Date: time.Date(2024, 5, 1, 15, 4, 0, 0, time.UTC), StatusID: 9,
			},
			assert: func(t *testing.T, store *fakeStore, event *domain.Event) {
				assert.Equal(t, int64(101), event.ID)
				assert.Equal(t, "Morning Run", event.Title)
				assert.Equal(t, domain.EventStatusOpen, event.StatusID)
				assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), event.Date)
				assert.False(t, event.CreatedAt.IsZero())
				assert.Equal(t, event.CreatedAt, event.UpdatedAt)
				_, ok := store.events.byID[101]
				assert.True(t, ok)
			},
		},
		{
			name:    "missing owner",
			event:   &domain.Event{SportID: 2, Title: "Run", City: "Sofia", Country: "BG", Date: time.Now()},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "missing required fields",
			event:   &domain.Event{OwnerID: "u1", Title: "   "},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "repo error",
			event:   &domain.Event{OwnerID: "u1", SportID: 2, Title: "Run", City: "Sofia", Country: "BG", Date: time.Now()},
			repoErr: errDB,
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.events.createErr = tt.repoErr
			svc := newTestEventService(store)

			err := svc.CreateEvent(ctx, tt.event)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, store.events.byID)
				return
			}
			require.NoError(t, err)
			tt.assert(t, store, tt.event)
		})
	}
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		eventID  int64
		callerID string
		wantErr  error
	}{
		{name: "success", eventID: 101, callerID: "owner-1"},
		{name: "event not found", eventID: 999, callerID: "owner-1", wantErr: domain.ErrNotFound},
		{name: "forbidden not owner", eventID: 101, callerID: "other", wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.seedEvent("owner-1", "Padel", 0)
			svc := newTestEventService(store)

			err := svc.DeleteEvent(ctx, tt.eventID, tt.callerID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, store.events.byID, 1, "failed delete must not remove anything")
				return
			}
			require.NoError(t, err)

			_, err = svc.GetEventDetail(ctx, tt.eventID, tt.callerID)
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestEventService_ListOwnAndByUser(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	late := store.seedEvent("owner-1", "Late", 5)
	early := store.seedEvent("owner-1", "Early", 1)
	store.seedEvent("owner-2", "Other", 2)
	svc := newTestEventService(store)

	own, err := svc.ListOwnEvents(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, []int64{early.ID, late.ID}, []int64{own[0].ID, own[1].ID})

	byUser, err := svc.ListEventsByUser(ctx, "owner-2")
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, "Other", byUser[0].Title)

	none, err := svc.ListEventsByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestEventService_ListAllEvents(t *testing.T) {
	ctx := context.Background()
	sport := 3
	from := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	newStore := func() *fakeStore {
		store := newFakeStore()
		for i, title := range []string{"Beach volley", "River run", "Tennis doubles", "Night run", "Yoga"} {
			e := store.seedEvent("owner-1", title, i)
			if i%2 == 0 {
				e.SportID = 3
			}
		}
		store.favorites.marks[favoriteKey{"caller", 102}] = struct{}{}
		store.favorites.marks[favoriteKey{"someone-else", 101}] = struct{}{}
		return store
	}

	tests := []struct {
		name      string
		filter    domain.EventFilter
		page      domain.PaginationParams
		callerID  string
		wantErr   error
		wantTotal int
		wantIDs   []int64
		wantFavs  []int64
		wantPage  domain.PaginationParams
	}{
		{
			name:      "no filter first page",
			page:      domain.PaginationParams{Page: 1, PageSize: 2},
			callerID:  "caller",
			wantTotal: 5,
			wantIDs:   []int64{101, 102},
			wantFavs:  []int64{102},
			wantPage:  domain.PaginationParams{Page: 1, PageSize: 2},
		},
		{
			name:      "second page",
			page:      domain.PaginationParams{Page: 2, PageSize: 2},
			callerID:  "caller",
			wantTotal: 5,
			wantIDs:   []int64{103, 104},
			wantFavs:  []int64{},
			wantPage:  domain.PaginationParams{Page: 2, PageSize: 2},
		},
		{
			name:      "page beyond last is empty with total",
			page:      domain.PaginationParams{Page: 9, PageSize: 2},
			callerID:  "caller",
			wantTotal: 5,
			wantIDs:   []int64{},
			wantFavs:  []int64{},
			wantPage:  domain.PaginationParams{Page: 9, PageSize: 2},
		},
		{
			name:      "query matches case-insensitively",
			filter:    domain.EventFilter{Query: "RUN"},
			callerID:  "caller",
			wantTotal: 2,
			wantIDs:   []int64{102, 104},
			wantFavs:  []int64{102},
			wantPage:  domain.PaginationParams{Page: 1, PageSize: domain.DefaultPageSize},
		},
		{
			name:      "sport and date from combine with AND",
			filter:    domain.EventFilter{SportID: &sport, DateFrom: &from},
			wantTotal: 2,
			wantIDs:   []int64{103, 105},
			wantFavs:  []int64{},
			wantPage:  domain.PaginationParams{Page: 1, PageSize: domain.DefaultPageSize},
		},
		{
			name:      "anonymous caller sees no favorites",
			page:      domain.PaginationParams{Page: 0, PageSize: 500},
			wantTotal: 5,
			wantIDs:   []int64{101, 102, 103, 104, 105},
			wantFavs:  []int64{},
			wantPage:  domain.PaginationParams{Page: 1, PageSize: domain.MaxPageSize},
		},
		{
			name:    "inverted date range",
			filter:  domain.EventFilter{DateFrom: &from, DateTo: &to},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestEventService(newStore())

			res, err := svc.ListAllEvents(ctx, tt.filter, tt.page, tt.callerID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalCount)
			assert.Equal(t, tt.wantPage.Page, res.PageNumber)
			assert.Equal(t, tt.wantPage.PageSize, res.PageSize)

			ids := make([]int64, 0)
			favs := make([]int64, 0)
			for _, s := range res.Data {
				ids = append(ids, s.ID)
				if s.IsFavorite {
					favs = append(favs, s.ID)
				}
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantFavs, favs)
		})
	}
}

func TestEventService_GetEventDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("owner profile favorite and join status are caller scoped", func(t *testing.T) {
		store := newFakeStore()
		e := store.seedEvent("u1", "Morning Run", 0)
		store.users.byID["u1"] = &domain.UserProfile{ID: "u1", DisplayName: "Uma", Email: "uma@example.com"}
		store.favorites.marks[favoriteKey{"u3", e.ID}] = struct{}{}
		req := domain.NewEventRequest(e.ID, "u2", "u1", time.Now())
		require.NoError(t, store.requests.Create(ctx, req))
		svc := newTestEventService(store)

		detail, err := svc.GetEventDetail(ctx, e.ID, "u2")
		require.NoError(t, err)
		assert.Equal(t, "Morning Run", detail.Title)
		assert.False(t, detail.IsFavorite, "another user's favorite must not leak")
		require.NotNil(t, detail.Owner)
		assert.Equal(t, "Uma", detail.Owner.DisplayName)
		require.NotNil(t, detail.JoinStatus)
		assert.True(t, detail.JoinStatus.IsJoined)
		assert.Equal(t, domain.RequestStatusPending, detail.JoinStatus.StatusID)

		detail, err = svc.GetEventDetail(ctx, e.ID, "u3")
		require.NoError(t, err)
		assert.True(t, detail.IsFavorite)
		assert.Nil(t, detail.JoinStatus)
	})

	t.Run("latest request wins after re-request", func(t *testing.T) {
		store := newFakeStore()
		e := store.seedEvent("u1", "Run", 0)
		first := domain.NewEventRequest(e.ID, "u2", "u1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, store.requests.Create(ctx, first))
		require.NoError(t, first.Decide(domain.DecisionReject, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, store.requests.UpdateStatus(ctx, first))
		second := domain.NewEventRequest(e.ID, "u2", "u1", time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))
		require.NoError(t, store.requests.Create(ctx, second))

		detail, err := newTestEventService(store).GetEventDetail(ctx, e.ID, "u2")
		require.NoError(t, err)
		require.NotNil(t, detail.JoinStatus)
		assert.Equal(t, domain.RequestStatusPending, detail.JoinStatus.StatusID)
	})

	t.Run("missing owner profile leaves owner nil", func(t *testing.T) {
		store := newFakeStore()
		e := store.seedEvent("ghost", "Run", 0)
		detail, err := newTestEventService(store).GetEventDetail(ctx, e.ID, "")
		require.NoError(t, err)
		assert.Nil(t, detail.Owner)
		assert.False(t, detail.IsFavorite)
		assert.Nil(t, detail.JoinStatus)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := newTestEventService(newFakeStore()).GetEventDetail(ctx, 404, "u2")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("deleted event is not found after a prior read", func(t *testing.T) {
		store := newFakeStore()
		e := store.seedEvent("u1", "Run", 0)
		svc := newTestEventService(store)

		_, err := svc.GetEventDetail(ctx, e.ID, "u2")
		require.NoError(t, err)
		require.NoError(t, svc.DeleteEvent(ctx, e.ID, "u1"))

		_, err = svc.GetEventDetail(ctx, e.ID, "u2")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("update is visible to the next read", func(t *testing.T) {
		store := newFakeStore()
		e := store.seedEvent("u1", "Run", 0)
		svc := newTestEventService(store)

		_, err := svc.GetEventDetail(ctx, e.ID, "u2")
		require.NoError(t, err)
		fields := e.Fields()
		fields.Title = "Trail Run"
		_, err = svc.UpdateEvent(ctx, e.ID, "u1", fields)
		require.NoError(t, err)

		detail, err := svc.GetEventDetail(ctx, e.ID, "u2")
		require.NoError(t, err)
		assert.Equal(t, "Trail Run", detail.Title)
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	valid := domain.EventFields{
		SportID: 4, ExperienceID: 2, Title: "Evening Run", Description: "easy pace",
		Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), Hour: "19:00", City: "Plovdiv", Country: "BG",
	}

	tests := []struct {
		name     string
		eventID  int64
		callerID string
		fields   domain.EventFields
		wantErr  error
	}{
		{name: "success", eventID: 101, callerID: "u1", fields: valid},
		{name: "not found", eventID: 404, callerID: "u1", fields: valid, wantErr: domain.ErrNotFound},
		{name: "not owner", eventID: 101, callerID: "u2", fields: valid, wantErr: domain.ErrForbidden},
		{name: "invalid fields", eventID: 101, callerID: "u1", fields: domain.EventFields{Title: "x"}, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			orig := store.seedEvent("u1", "Morning Run", 0)
			createdAt := orig.CreatedAt
			svc := newTestEventService(store)

			got, err := svc.UpdateEvent(ctx, tt.eventID, tt.callerID, tt.fields)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "Morning Run", store.events.byID[101].Title)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Evening Run", got.Title)
			assert.Equal(t, "u1", got.OwnerID)
			assert.Equal(t, domain.EventStatusOpen, got.StatusID)
			assert.Equal(t, createdAt, got.CreatedAt)
			assert.Equal(t, time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC), got.UpdatedAt)
		})
	}
}

func TestEventService_ListEventsForMap(t *testing.T) {
	store := newFakeStore()
	store.seedEvent("u1", "A", 2)
	store.seedEvent("u1", "B", 1)

	locs, err := newTestEventService(store).ListEventsForMap(context.Background())
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, "B", locs[0].Title)
}
