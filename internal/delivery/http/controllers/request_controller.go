package controllers

import (
	"log/slog"
	"net/http"

	"together/internal/delivery/http/helpers"
	"together/internal/domain"
)

// DecisionBody is the request body for POST /requests/{requestID}/decision.
type DecisionBody struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
}

// EventRequestSuccessResponse is the success envelope for endpoints returning one join request.
type EventRequestSuccessResponse struct {
	Data  *domain.EventRequest `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// EventRequestListSuccessResponse is the success envelope for endpoints returning join requests.
type EventRequestListSuccessResponse struct {
	Data  []*domain.EventRequest `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type RequestController struct {
	Logger  *slog.Logger
	Service domain.RequestService
}

func NewRequestController(logger *slog.Logger, svc domain.RequestService) *RequestController {
	return &RequestController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateRequest godoc
// @Summary Request to join an event
// @Description Creates a pending join request for the authenticated user and notifies the event owner.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 201 {object} controllers.EventRequestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (own event)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (active request exists)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/requests [post]
func (c *RequestController) CreateRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	req, err := c.Service.CreateRequest(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, req)
}

// ListEventRequests godoc
// @Summary List join requests for an event
// @Description Oldest first. Only the event owner can list them.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.EventRequestListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/requests [get]
func (c *RequestController) ListEventRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	reqs, err := c.Service.ListEventRequests(r.Context(), eventID, userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reqs)
}

// ListMyRequests godoc
// @Summary List my join requests
// @Description Requests made by the authenticated user, newest first.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventRequestListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /requests/mine [get]
func (c *RequestController) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	reqs, err := c.Service.ListMyRequests(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reqs)
}

// Decide godoc
// @Summary Accept or reject a join request
// @Description Moves a pending request to accepted or rejected and notifies the guest. Only the event owner can decide.
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestID path int true "Request ID"
// @Param body body DecisionBody true "accept or reject"
// @Success 200 {object} controllers.EventRequestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already decided)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /requests/{requestID}/decision [post]
func (c *RequestController) Decide(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	requestID, ok := pathID(w, r, "requestID")
	if !ok {
		return
	}
	var body DecisionBody
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	decision, err := domain.ParseDecision(body.Decision)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	req, err := c.Service.Decide(r.Context(), requestID, userID, decision)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "request not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, req)
}
