package handler

import (
	"errors"
	"net/http"

	"github.com/sarangchurch/quiettime/internal/service"
	"github.com/sarangchurch/quiettime/internal/ui"
	"github.com/sarangchurch/quiettime/internal/ui/pages"
)

type GuideHandler struct {
	guideService *service.GuideService
}

func NewGuideHandler(guideService *service.GuideService) *GuideHandler {
	return &GuideHandler{guideService: guideService}
}

func (h *GuideHandler) Index(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.GuideIndex(h.guideService.Pages()))
}

func (h *GuideHandler) Page(w http.ResponseWriter, r *http.Request) {
	page, err := h.guideService.Page(r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, service.ErrGuidePageNotFound) {
			w.WriteHeader(http.StatusNotFound)
			ui.Render(w, r, pages.NotFound())
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.GuidePage(page))
}
