package controllers

import (
	"log/slog"
	"net/http"

	"together/internal/delivery/http/helpers"
	"together/internal/domain"
)

// FavoriteSuccessResponse is the success envelope for POST /events/{eventID}/favorite.
type FavoriteSuccessResponse struct {
	Data  *domain.FavoriteResult `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type FavoriteController struct {
	Logger  *slog.Logger
	Service domain.FavoriteService
}

func NewFavoriteController(logger *slog.Logger, svc domain.FavoriteService) *FavoriteController {
	return &FavoriteController{
		Logger:  logger,
		Service: svc,
	}
}

// ToggleFavorite godoc
// @Summary Toggle an event as favorite
// @Description Marks the event as a favorite of the authenticated user, or unmarks it if already marked.
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.FavoriteSuccessResponse "data.is_favorite is the new state"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/favorite [post]
func (c *FavoriteController) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	result, err := c.Service.Toggle(r.Context(), userID, eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// ListFavorites godoc
// @Summary List my favorite events
// @Description Most recently marked first.
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /favorites [get]
func (c *FavoriteController) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	events, err := c.Service.ListFavorites(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}
