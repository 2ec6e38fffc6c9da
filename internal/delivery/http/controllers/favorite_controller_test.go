package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"together/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteController_ToggleFavorite(t *testing.T) {
	t.Run("toggles on then off", func(t *testing.T) {
		fake := &fakeFavoriteService{}
		ctrl := NewFavoriteController(testLogger, fake)

		for _, want := range []bool{true, false} {
			req := httptest.NewRequest(http.MethodPost, "/events/101/favorite", nil)
			req.SetPathValue("eventID", "101")
			rr := httptest.NewRecorder()

			ctrl.ToggleFavorite(rr, withUser(req, "user-1"))

			require.Equal(t, http.StatusOK, rr.Code)
			var got domain.FavoriteResult
			decodeEnvelope(t, rr, &got)
			assert.Equal(t, int64(101), got.EventID)
			assert.Equal(t, want, got.IsFavorite)
		}
		assert.Equal(t, "user-1", fake.lastUserID)
	})

	tests := []struct {
		name          string
		eventID       string
		noUserContext bool
		fakeErr       error
		wantStatus    int
	}{
		{name: "no user in context", eventID: "101", noUserContext: true, wantStatus: http.StatusUnauthorized},
		{name: "invalid eventID", eventID: "x", wantStatus: http.StatusBadRequest},
		{name: "event missing", eventID: "999", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "service error", eventID: "101", fakeErr: errors.New("db error"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewFavoriteController(testLogger, &fakeFavoriteService{err: tt.fakeErr})
			req := httptest.NewRequest(http.MethodPost, "/events/"+tt.eventID+"/favorite", nil)
			req.SetPathValue("eventID", tt.eventID)
			if !tt.noUserContext {
				req = withUser(req, "user-1")
			}
			rr := httptest.NewRecorder()

			ctrl.ToggleFavorite(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr, nil)
			require.NotNil(t, envelope.Error)
		})
	}
}

func TestFavoriteController_ListFavorites(t *testing.T) {
	fake := &fakeFavoriteService{events: []*domain.Event{{ID: 103}, {ID: 101}}}
	ctrl := NewFavoriteController(testLogger, fake)
	rr := httptest.NewRecorder()

	ctrl.ListFavorites(rr, withUser(httptest.NewRequest(http.MethodGet, "/favorites", nil), "user-1"))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []*domain.Event
	decodeEnvelope(t, rr, &got)
	require.Len(t, got, 2)
	assert.Equal(t, int64(103), got[0].ID)
	assert.Equal(t, "user-1", fake.lastUserID)

	rr = httptest.NewRecorder()
	ctrl.ListFavorites(rr, httptest.NewRequest(http.MethodGet, "/favorites", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
