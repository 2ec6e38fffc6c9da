package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"together/internal/delivery/http/helpers"
	"together/internal/delivery/http/middleware"
	"together/internal/domain"
)

// StatusResponse is returned by endpoints that have no resource to show.
type StatusResponse struct {
	Status string `json:"status"`
}

// StatusSuccessResponse is the success envelope for StatusResponse.
type StatusSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// writeServiceError maps err to a status code. notFoundMsg replaces the message on 404 so
// storage wording never reaches clients; 500s are logged and answered generically.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	status, code := helpers.StatusForError(err)
	switch {
	case status == http.StatusInternalServerError:
		logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path, "method", r.Method, "request_id", middleware.RequestIDFromContext(r.Context()), "err", err)
		helpers.WriteJSONError(w, status, code, "internal server error")
	case errors.Is(err, domain.ErrNotFound) && notFoundMsg != "":
		helpers.WriteJSONError(w, status, code, notFoundMsg)
	default:
		helpers.WriteJSONError(w, status, code, err.Error())
	}
}

// requireUserID returns the authenticated caller or writes a 401.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	}
	return userID, ok
}

// pathID parses a positive integer path value or writes a 400.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, ok := helpers.PathInt64(r, name)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
	}
	return id, ok
}
