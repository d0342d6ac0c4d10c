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

type ReadingHandler struct {
	readingService *service.ReadingService
}

func NewReadingHandler(readingService *service.ReadingService) *ReadingHandler {
	return &ReadingHandler{readingService: readingService}
}

// ReadingPage lists the member's plans and the available templates.
func (h *ReadingHandler) ReadingPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	templates, err := h.readingService.Templates()
	if err != nil {
		slog.Error("failed to load templates", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	plans, err := h.readingService.Plans(user.ID)
	if err != nil {
		slog.Error("failed to load plans", "user_id", user.ID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Reading(templates, plans))
}

// PlanPage renders one plan's daily readings.
func (h *ReadingHandler) PlanPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	planID := r.PathValue("id")

	progress, err := h.readingService.Progress(user.ID, planID)
	if err != nil {
		if errors.Is(err, repository.ErrReadingPlanNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("failed to load plan", "user_id", user.ID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	items, err := h.readingService.TemplateItems(progress.Plan.TemplateID)
	if err != nil {
		slog.Error("failed to load plan items", "user_id", user.ID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.ReadingPlanDetail(progress, items))
}

type startPlanRequest struct {
	TemplateID string `json:"template_id"`
}

// StartPlan handles POST /api/reading/plans.
func (h *ReadingHandler) StartPlan(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req startPlanRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return
	}

	plan, err := h.readingService.StartPlan(user.ID, req.TemplateID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTemplateNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Reading plan template not found.")
		case errors.Is(err, repository.ErrDuplicatePlan):
			writeError(w, http.StatusConflict, "duplicate_plan", "You already started this plan.")
		default:
			slog.Error("failed to start plan", "user_id", user.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "Failed to start plan.")
		}
		return
	}

	writeJSON(w, http.StatusCreated, plan)
}

type completionRequest struct {
	Date string  `json:"date"`
	Memo *string `json:"memo,omitempty"`
}

// CompleteDate handles POST /api/reading/plans/{id}/completions.
func (h *ReadingHandler) CompleteDate(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	planID := r.PathValue("id")

	var req completionRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return
	}

	completion, err := h.readingService.CompleteDate(user.ID, planID, req.Date, req.Memo)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReadingPlanNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Reading plan not found.")
		case errors.Is(err, service.ErrPlanNotActive):
			writeError(w, http.StatusConflict, "plan_not_active", err.Error())
		case isValidationError(err):
			writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
		default:
			slog.Error("failed to complete date", "user_id", user.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "Failed to record completion.")
		}
		return
	}

	writeJSON(w, http.StatusOK, completion)
}

// UncompleteDate handles DELETE /api/reading/plans/{id}/completions/{date}.
func (h *ReadingHandler) UncompleteDate(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	planID := r.PathValue("id")
	date := r.PathValue("date")

	err := h.readingService.UncompleteDate(user.ID, planID, date)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReadingPlanNotFound), errors.Is(err, repository.ErrCompletionNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Completion not found.")
		default:
			slog.Error("failed to uncomplete date", "user_id", user.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "Failed to remove completion.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"plan_id": planID, "date": date})
}

// AbandonPlan handles POST /api/reading/plans/{id}/abandon.
func (h *ReadingHandler) AbandonPlan(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	planID := r.PathValue("id")

	err := h.readingService.AbandonPlan(user.ID, planID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReadingPlanNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Reading plan not found.")
		case errors.Is(err, service.ErrPlanNotActive):
			writeError(w, http.StatusConflict, "plan_not_active", err.Error())
		default:
			slog.Error("failed to abandon plan", "user_id", user.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "Failed to abandon plan.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"plan_id": planID})
}
