package controllers

import (
	"log/slog"
	"net/http"

	"together/internal/delivery/http/helpers"
	"together/internal/domain"
)

// SportsSuccessResponse is the success envelope for GET /sports.
type SportsSuccessResponse struct {
	Data  []*domain.Sport   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ExperienceLevelsSuccessResponse is the success envelope for GET /experience-levels.
type ExperienceLevelsSuccessResponse struct {
	Data  []*domain.ExperienceLevel `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type ReferenceController struct {
	Logger  *slog.Logger
	Service domain.ReferenceService
}

func NewReferenceController(logger *slog.Logger, svc domain.ReferenceService) *ReferenceController {
	return &ReferenceController{Logger: logger, Service: svc}
}

// ListSports godoc
// @Summary List sports
// @Tags reference
// @Produce json
// @Success 200 {object} controllers.SportsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sports [get]
func (c *ReferenceController) ListSports(w http.ResponseWriter, r *http.Request) {
	sports, err := c.Service.ListSports(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sports)
}

// ListExperienceLevels godoc
// @Summary List experience levels
// @Tags reference
// @Produce json
// @Success 200 {object} controllers.ExperienceLevelsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /experience-levels [get]
func (c *ReferenceController) ListExperienceLevels(w http.ResponseWriter, r *http.Request) {
	levels, err := c.Service.ListExperienceLevels(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, levels)
}
