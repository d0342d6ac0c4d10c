package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sarangchurch/quiettime/internal/ctxkeys"
	"github.com/sarangchurch/quiettime/internal/service"
	"github.com/sarangchurch/quiettime/internal/ui"
	"github.com/sarangchurch/quiettime/internal/ui/pages"
)

type BibleHandler struct {
	bibleService *service.BibleService
}

func NewBibleHandler(bibleService *service.BibleService) *BibleHandler {
	return &BibleHandler{bibleService: bibleService}
}

func (h *BibleHandler) currentYear(r *http.Request) int {
	today := ctxkeys.Today(r.Context())
	year, err := strconv.Atoi(today[:4])
	if err != nil {
		return 0
	}

	if q := r.URL.Query().Get("year"); q != "" {
		y, err := strconv.Atoi(q)
		if err == nil && y >= 2000 && y <= 2100 {
			return y
		}
	}
	return year
}

// BiblePage renders the annual readthrough grid.
func (h *BibleHandler) BiblePage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())

	progress, err := h.bibleService.Progress(user.ID, h.currentYear(r))
	if err != nil {
		slog.Error("failed to load bible progress", "user_id", user.ID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Bible(progress, profile.ReadthroughCount))
}

type toggleRequest struct {
	BookID  int `json:"book_id"`
	Chapter int `json:"chapter"`
	Year    int `json:"year"`
}

// Toggle handles POST /api/bible/toggle.
func (h *BibleHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req toggleRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return
	}

	progress, err := h.bibleService.ToggleChapter(user.ID, req.BookID, req.Chapter, req.Year)
	if err != nil {
		if errors.Is(err, service.ErrUnknownBook) || errors.Is(err, service.ErrInvalidChapter) {
			writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
			return
		}
		slog.Error("failed to toggle chapter", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "Failed to update progress.")
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

type bookRequest struct {
	BookID int `json:"book_id"`
	Year   int `json:"year"`
}

// MarkBook handles POST /api/bible/books/mark.
func (h *BibleHandler) MarkBook(w http.ResponseWriter, r *http.Request) {
	h.bookAction(w, r, h.bibleService.MarkBook)
}

// UnmarkBook handles POST /api/bible/books/unmark.
func (h *BibleHandler) UnmarkBook(w http.ResponseWriter, r *http.Request) {
	h.bookAction(w, r, h.bibleService.UnmarkBook)
}

func (h *BibleHandler) bookAction(w http.ResponseWriter, r *http.Request, action func(string, int, int) error) {
	user := ctxkeys.User(r.Context())

	var req bookRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return
	}

	err = action(user.ID, req.BookID, req.Year)
	if err != nil {
		if errors.Is(err, service.ErrUnknownBook) {
			writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
			return
		}
		slog.Error("failed book action", "user_id", user.ID, "book_id", req.BookID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "Failed to update progress.")
		return
	}

	progress, err := h.bibleService.Progress(user.ID, req.Year)
	if err != nil {
		slog.Error("failed to load bible progress", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "Failed to load progress.")
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

// Progress handles GET /api/bible/progress?year=YYYY.
func (h *BibleHandler) Progress(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	progress, err := h.bibleService.Progress(user.ID, h.currentYear(r))
	if err != nil {
		slog.Error("failed to load bible progress", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "Failed to load progress.")
		return
	}

	writeJSON(w, http.StatusOK, progress)
}

// CompleteReadthrough handles POST /api/bible/readthrough.
func (h *BibleHandler) CompleteReadthrough(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req bookRequest
	err := decodeJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON.")
		return
	}

	profile, err := h.bibleService.CompleteReadthrough(user.ID, req.Year)
	if err != nil {
		if errors.Is(err, service.ErrReadthroughIncomplete) {
			writeError(w, http.StatusBadRequest, "incomplete", err.Error())
			return
		}
		slog.Error("failed to complete readthrough", "user_id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal", "Failed to record readthrough.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"readthrough_count": profile.ReadthroughCount})
}
