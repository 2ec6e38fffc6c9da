package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"together/internal/delivery/http/helpers"
	"together/internal/domain"
)

// UserEquipmentBody is the request body for POST /equipment/mine.
type UserEquipmentBody struct {
	EquipmentID int `json:"equipment_id" validate:"required,gt=0"`
}

// EquipmentSuccessResponse is the success envelope for GET /equipment.
type EquipmentSuccessResponse struct {
	Data  []*domain.Equipment `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// UserEquipmentSuccessResponse is the success envelope for endpoints returning the caller's equipment.
type UserEquipmentSuccessResponse struct {
	Data  []*domain.UserEquipment `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

type EquipmentController struct {
	Logger  *slog.Logger
	Service domain.EquipmentService
}

func NewEquipmentController(logger *slog.Logger, svc domain.EquipmentService) *EquipmentController {
	return &EquipmentController{Logger: logger, Service: svc}
}

// ListEquipment godoc
// @Summary List the equipment catalog
// @Description With sport_id, returns that sport's items plus general gear.
// @Tags equipment
// @Produce json
// @Param sport_id query int false "Sport ID"
// @Success 200 {object} controllers.EquipmentSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /equipment [get]
func (c *EquipmentController) ListEquipment(w http.ResponseWriter, r *http.Request) {
	var sportID *int
	if s := r.URL.Query().Get("sport_id"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "sport_id must be a positive integer")
			return
		}
		sportID = &v
	}
	items, err := c.Service.ListEquipment(r.Context(), sportID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// AddUserEquipment godoc
// @Summary Add an item to my equipment
// @Description Adding an item already owned is a no-op. Returns the caller's full list.
// @Tags equipment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UserEquipmentBody true "Catalog item"
// @Success 200 {object} controllers.UserEquipmentSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /equipment/mine [post]
func (c *EquipmentController) AddUserEquipment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var body UserEquipmentBody
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	items, err := c.Service.AddUserEquipment(r.Context(), userID, body.EquipmentID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "equipment not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// ListUserEquipment godoc
// @Summary List my equipment
// @Tags equipment
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.UserEquipmentSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /equipment/mine [get]
func (c *EquipmentController) ListUserEquipment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	items, err := c.Service.ListUserEquipment(r.Context(), userID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}
