package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sarangchurch/quiettime/internal/ctxkeys"
	"github.com/sarangchurch/quiettime/internal/repository"
	"github.com/sarangchurch/quiettime/internal/service"
	"github.com/sarangchurch/quiettime/internal/ui"
	"github.com/sarangchurch/quiettime/internal/ui/pages"
)

type CheckinHandler struct {
	checkinService *service.CheckinService
}

func NewCheckinHandler(checkinService *service.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinService: checkinService}
}

// DevotionPage renders the calendar view for the month containing today.
func (h *CheckinHandler) DevotionPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	today := ctxkeys.Today(r.Context())

	date := r.URL.Query().Get("month")
	if date == "" {
		date = today
	}

	checkins, err := h.checkinService.Month(user.ID, date)
	if err != nil {
		slog.Error("failed to load month", "user_id", user.ID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Devotion(today, checkins))
}

type checkinRequest struct {
	ID               *string `json:"id,omitempty"`
	CheckinDate      string  `json:"checkin_date"`
	PlanID           *string `json:"plan_id,omitempty"`
	PlannedStartTime *string `json:"planned_start_time,omitempty"`
	PlannedEndTime   *string `json:"planned_end_time,omitempty"`
	StartTime        *string `json:"start_time,omitempty"`
	EndTime          *string `json:"end_time,omitempty"`
	DurationMinutes  *int    `json:"duration_minutes,omitempty"`
	Memo             *string `json:"memo,omitempty"`
}

// Save handles POST /api/checkins: create or update, split included.
func (h *CheckinHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req checkinRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return
	}

	checkin, err := h.checkinService.Save(user.ID, req.ID, service.CheckinInput{
		CheckinDate:      req.CheckinDate,
		PlanID:           req.PlanID,
		PlannedStartTime: req.PlannedStartTime,
		PlannedEndTime:   req.PlannedEndTime,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		DurationMinutes:  req.DurationMinutes,
		Memo:             req.Memo,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCheckinNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Check-in not found.")
		case errors.Is(err, service.ErrChildCheckinEdit):
			writeError(w, http.StatusConflict, "child_checkin", err.Error())
		case errors.Is(err, service.ErrEndOfDayInput):
			writeError(w, http.StatusBadRequest, "invalid_time", err.Error())
		default:
			if isValidationError(err) {
				writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
				return
			}
			slog.Error("failed to save checkin", "user_id", user.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "Failed to save check-in.")
		}
		return
	}

	writeJSON(w, http.StatusOK, checkin)
}

// Delete handles DELETE /api/checkins/{id}.
func (h *CheckinHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	id := r.PathValue("id")

	err := h.checkinService.Delete(user.ID, id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCheckinNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Check-in not found.")
		case errors.Is(err, service.ErrChildCheckinEdit):
			writeError(w, http.StatusConflict, "child_checkin", err.Error())
		default:
			slog.Error("failed to delete checkin", "user_id", user.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "Failed to delete check-in.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// Month handles GET /api/checkins?month=YYYY-MM-DD.
func (h *CheckinHandler) Month(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	date := r.URL.Query().Get("month")
	if date == "" {
		date = ctxkeys.Today(r.Context())
	}

	checkins, err := h.checkinService.Month(user.ID, date)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
			return
		}
		slog.Error("failed to load month", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "Failed to load check-ins.")
		return
	}

	writeJSON(w, http.StatusOK, checkins)
}

// Stats handles GET /api/checkins/stats.
func (h *CheckinHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	today := ctxkeys.Today(r.Context())

	stats, err := h.checkinService.Stats(user.ID, today)
	if err != nil {
		slog.Error("failed to load stats", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "Failed to load stats.")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
