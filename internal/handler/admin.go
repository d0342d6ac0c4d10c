package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sarangchurch/quiettime/internal/ctxkeys"
	"github.com/sarangchurch/quiettime/internal/repository"
	"github.com/sarangchurch/quiettime/internal/service"
	"github.com/sarangchurch/quiettime/internal/ui"
	"github.com/sarangchurch/quiettime/internal/ui/pages"
)

const membersPerPage = 20

type AdminHandler struct {
	userService    *service.UserService
	checkinService *service.CheckinService
	readingService *service.ReadingService
}

func NewAdminHandler(
	userService *service.UserService,
	checkinService *service.CheckinService,
	readingService *service.ReadingService,
) *AdminHandler {
	return &AdminHandler{
		userService:    userService,
		checkinService: checkinService,
		readingService: readingService,
	}
}

// MembersPage renders the roster with per-member current streaks.
func (h *AdminHandler) MembersPage(w http.ResponseWriter, r *http.Request) {
	today := ctxkeys.Today(r.Context())
	search := r.URL.Query().Get("q")

	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	members, total, err := h.userService.Members(search, membersPerPage, (page-1)*membersPerPage)
	if err != nil {
		slog.Error("failed to load members", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	for _, m := range members {
		streak, err := h.checkinService.StreakFor(m.UserID, today)
		if err != nil {
			slog.Warn("failed to compute streak", "user_id", m.UserID, "error", err)
			continue
		}
		m.CurrentStreak = streak
	}

	ui.Render(w, r, pages.AdminMembers(members, total, page, membersPerPage, search))
}

// Provision handles POST /admin/members (form submission from the roster).
func (h *AdminHandler) Provision(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	_, _, err = h.userService.Provision(
		r.PostFormValue("email"),
		r.PostFormValue("full_name"),
		r.PostFormValue("role"),
	)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			http.Error(w, "an account with this email already exists", http.StatusConflict)
			return
		}
		slog.Warn("provisioning rejected", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/admin/members", http.StatusSeeOther)
}

// ResetPassword handles POST /api/admin/members/{id}/reset-password.
func (h *AdminHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	targetID := r.PathValue("id")

	password, err := h.userService.ResetPassword(targetID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Member not found.")
			return
		}
		slog.Error("failed to reset password", "target_id", targetID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "Failed to reset password.")
		return
	}

	// returned once so the admin can hand it over when email is not set up
	writeJSON(w, http.StatusOK, map[string]string{"temporary_password": password})
}

type roleRequest struct {
	Role string `json:"role"`
}

// SetRole handles POST /api/admin/members/{id}/role.
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	actor := ctxkeys.User(r.Context())
	targetID := r.PathValue("id")

	var req roleRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return
	}

	err = h.userService.SetRole(actor.ID, targetID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDemotion):
			writeError(w, http.StatusConflict, "self_change", err.Error())
		case errors.Is(err, service.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, "invalid_role", err.Error())
		case errors.Is(err, repository.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Member not found.")
		default:
			slog.Error("failed to set role", "target_id", targetID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "Failed to update role.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"user_id": targetID, "role": req.Role})
}

type lockRequest struct {
	Locked bool `json:"locked"`
}

// SetLocked handles POST /api/admin/members/{id}/lock.
func (h *AdminHandler) SetLocked(w http.ResponseWriter, r *http.Request) {
	actor := ctxkeys.User(r.Context())
	targetID := r.PathValue("id")

	var req lockRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return
	}

	err = h.userService.SetLocked(actor.ID, targetID, req.Locked)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfLock):
			writeError(w, http.StatusConflict, "self_change", err.Error())
		case errors.Is(err, repository.ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Member not found.")
		default:
			slog.Error("failed to change lock", "target_id", targetID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "Failed to update account.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user_id": targetID, "locked": req.Locked})
}

// Delete handles DELETE /api/admin/members/{id}.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := ctxkeys.User(r.Context())
	targetID := r.PathValue("id")

	err := h.userService.Delete(actor.ID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDeletion):
			writeError(w, http.StatusConflict, "self_change", err.Error())
		case errors.Is(err, repository.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "not_found", "Member not found.")
		default:
			slog.Error("failed to delete member", "target_id", targetID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal", "Failed to delete member.")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"user_id": targetID})
}

type seedTemplateRequest struct {
	Year        int     `json:"year"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// SeedTemplate handles POST /api/admin/reading-templates.
func (h *AdminHandler) SeedTemplate(w http.ResponseWriter, r *http.Request) {
	actor := ctxkeys.User(r.Context())

	var req seedTemplateRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return
	}

	if req.Year < 2000 || req.Year > 2100 {
		writeError(w, http.StatusBadRequest, "invalid_input", "Year is out of range.")
		return
	}

	template, err := h.readingService.SeedTemplate(actor.ID, req.Year, req.Title, req.Description)
	if err != nil {
		slog.Error("failed to seed template", "year", req.Year, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "Failed to create template.")
		return
	}

	writeJSON(w, http.StatusCreated, template)
}
