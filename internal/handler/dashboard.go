package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sarangchurch/quiettime/internal/ctxkeys"
	"github.com/sarangchurch/quiettime/internal/model"
	"github.com/sarangchurch/quiettime/internal/repository"
	"github.com/sarangchurch/quiettime/internal/service"
	"github.com/sarangchurch/quiettime/internal/ui"
	"github.com/sarangchurch/quiettime/internal/ui/pages"
)

type DashboardHandler struct {
	checkinService *service.CheckinService
}

func NewDashboardHandler(checkinService *service.CheckinService) *DashboardHandler {
	return &DashboardHandler{checkinService: checkinService}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	today := ctxkeys.Today(r.Context())

	stats, err := h.checkinService.Stats(user.ID, today)
	if err != nil {
		slog.Error("failed to load stats", "user_id", user.ID, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var todayCheckin *model.Checkin
	checkin, err := h.checkinService.ByDate(user.ID, today)
	if err == nil {
		todayCheckin = checkin
	} else if !errors.Is(err, repository.ErrCheckinNotFound) {
		slog.Error("failed to load today's checkin", "user_id", user.ID, "error", err)
	}

	ui.Render(w, r, pages.Dashboard(today, stats, todayCheckin))
}
