package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sarangchurch/quiettime/internal/ctxkeys"
	"github.com/sarangchurch/quiettime/internal/repository"
	"github.com/sarangchurch/quiettime/internal/service"
)

type DevotionPlanHandler struct {
	planService *service.DevotionPlanService
}

func NewDevotionPlanHandler(planService *service.DevotionPlanService) *DevotionPlanHandler {
	return &DevotionPlanHandler{planService: planService}
}

type devotionPlanRequest struct {
	Year        int     `json:"year"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Frequency   string  `json:"frequency"`
	TargetCount int     `json:"target_count"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
}

func (req devotionPlanRequest) input() service.DevotionPlanInput {
	return service.DevotionPlanInput{
		Year:        req.Year,
		Title:       req.Title,
		Description: req.Description,
		Frequency:   req.Frequency,
		TargetCount: req.TargetCount,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
}

// List handles GET /api/devotion-plans?year=YYYY.
func (h *DevotionPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		today := ctxkeys.Today(r.Context())
		year, _ = strconv.Atoi(today[:4])
	}

	plans, err := h.planService.ByYear(user.ID, year)
	if err != nil {
		slog.Error("failed to load devotion plans", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "Failed to load plans.")
		return
	}

	writeJSON(w, http.StatusOK, plans)
}

// Create handles POST /api/devotion-plans.
func (h *DevotionPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req devotionPlanRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return
	}

	plan, err := h.planService.Create(user.ID, req.input())
	if err != nil {
		h.writePlanError(w, user.ID, err)
		return
	}

	writeJSON(w, http.StatusCreated, plan)
}

// Update handles PUT /api/devotion-plans/{id}.
func (h *DevotionPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := r.PathValue("id")

	var req devotionPlanRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return
	}

	plan, err := h.planService.Update(user.ID, id, req.input())
	if err != nil {
		h.writePlanError(w, user.ID, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// Delete handles DELETE /api/devotion-plans/{id}.
func (h *DevotionPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := r.PathValue("id")

	err := h.planService.Delete(user.ID, id)
	if err != nil {
		h.writePlanError(w, user.ID, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (h *DevotionPlanHandler) writePlanError(w http.ResponseWriter, userID string, err error) {
	switch {
	case errors.Is(err, repository.ErrDevotionPlanNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Devotion plan not found.")
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	default:
		slog.Error("devotion plan operation failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "Failed to save plan.")
	}
}
