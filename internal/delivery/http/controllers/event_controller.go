package controllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"together/internal/delivery/http/helpers"
	"together/internal/delivery/http/middleware"
	"together/internal/domain"
)

const dateLayout = "2006-01-02"

// EventBody is the request body for POST /events and PUT /events/{eventID}.
// experience_id 0 or omitted means any level.
type EventBody struct {
	SportID      int    `json:"sport_id" validate:"required,gt=0"`
	ExperienceID int    `json:"experience_id" validate:"gte=0"`
	Title        string `json:"title" validate:"required,max=100"`
	Description  string `json:"description" validate:"max=2000"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Hour         string `json:"hour" validate:"omitempty,datetime=15:04"`
	City         string `json:"city" validate:"required,max=100"`
	Country      string `json:"country" validate:"required,max=100"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
}

// Fields converts the body to domain fields. Date has already been validated by its tag.
func (b EventBody) Fields() domain.EventFields {
	date, _ := time.Parse(dateLayout, b.Date)
	return domain.EventFields{
		SportID:      b.SportID,
		ExperienceID: b.ExperienceID,
		Title:        b.Title,
		Description:  b.Description,
		Date:         date,
		Hour:         b.Hour,
		City:         b.City,
		Country:      b.Country,
		ImageURL:     b.ImageURL,
	}
}

// EventSuccessResponse is the success envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success envelope for endpoints returning a list of events.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventPageSuccessResponse is the success envelope for GET /events.
type EventPageSuccessResponse struct {
	Data  domain.PagedResult[*domain.EventSummary] `json:"data"`
	Error *helpers.APIError                        `json:"error"`
}

// EventDetailSuccessResponse is the success envelope for GET /events/{eventID}.
type EventDetailSuccessResponse struct {
	Data  *domain.EventDetail `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// EventLocationsSuccessResponse is the success envelope for GET /events/map.
type EventLocationsSuccessResponse struct {
	Data  []*domain.EventLocation `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an open event owned by the authenticated user.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventBody true "Event fields"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req EventBody
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := domain.NewEvent(userID, req.Fields(), time.Time{})
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary Browse events
// @Description Lists events ordered by date then id. All filters are optional and combined with AND; q matches title, description, city or country. is_favorite is set only for an authenticated caller.
// @Tags events
// @Produce json
// @Param q query string false "Free text search"
// @Param sport_id query int false "Sport id"
// @Param experience_id query int false "Experience level id"
// @Param date_from query string false "Earliest date (YYYY-MM-DD)"
// @Param date_to query string false "Latest date (YYYY-MM-DD)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.EventPageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (invalid token)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter, err := parseEventFilter(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	callerID, _ := middleware.UserIDFromContext(r.Context())
	page, err := c.Service.ListAllEvents(r.Context(), filter, helpers.ParsePagination(r), callerID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

type queryError string

func (e queryError) Error() string { return string(e) }

func parseEventFilter(r *http.Request) (domain.EventFilter, error) {
	q := r.URL.Query()
	f := domain.EventFilter{Query: strings.TrimSpace(q.Get("q"))}

	optInt := func(name string) (*int, error) {
		s := q.Get(name)
		if s == "" {
			return nil, nil
		}
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			return nil, queryError(name + " must be a positive integer")
		}
		return &v, nil
	}
	optDate := func(name string) (*time.Time, error) {
		s := q.Get(name)
		if s == "" {
			return nil, nil
		}
		v, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, queryError(name + " must match the format " + dateLayout)
		}
		return &v, nil
	}

	var err error
	if f.SportID, err = optInt("sport_id"); err != nil {
		return f, err
	}
	if f.ExperienceID, err = optInt("experience_id"); err != nil {
		return f, err
	}
	if f.DateFrom, err = optDate("date_from"); err != nil {
		return f, err
	}
	if f.DateTo, err = optDate("date_to"); err != nil {
		return f, err
	}
	return f, nil
}

// ListEventsForMap godoc
// @Summary Event locations
// @Description Lightweight locations of all open events, for plotting on a map.
// @Tags events
// @Produce json
// @Success 200 {object} controllers.EventLocationsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/map [get]
func (c *EventController) ListEventsForMap(w http.ResponseWriter, r *http.Request) {
	locations, err := c.Service.ListEventsForMap(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, locations)
}

// ListMyEvents godoc
// @Summary List my events
// @Description Events owned by the authenticated user, ordered by date.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/mine [get]
func (c *EventController) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	events, err := c.Service.ListOwnEvents(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListUserEvents godoc
// @Summary List a user's events
// @Description Events owned by the given user, ordered by date.
// @Tags events
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /users/{userID}/events [get]
func (c *EventController) ListUserEvents(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.PathValue("userID"))
	if userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing userID")
		return
	}
	events, err := c.Service.ListEventsByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Event detail
// @Description The event with its owner's public profile. is_favorite and join_status describe the authenticated caller and are empty for anonymous requests.
// @Tags events
// @Produce json
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.EventDetailSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	callerID, _ := middleware.UserIDFromContext(r.Context())
	detail, err := c.Service.GetEventDetail(r.Context(), eventID, callerID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, detail)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replaces the editable fields of an event. Only the owner can update; owner and status never change.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Param event body EventBody true "Event fields"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req EventBody
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, userID, req.Fields())
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event with its join requests and favorite marks. Only the owner can delete.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} controllers.StatusSuccessResponse "data.status is deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID, userID); err != nil {
		writeServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}
