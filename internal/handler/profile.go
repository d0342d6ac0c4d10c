package handler

import (
	"log/slog"
	"net/http"

	"github.com/sarangchurch/quiettime/internal/ctxkeys"
	"github.com/sarangchurch/quiettime/internal/service"
	"github.com/sarangchurch/quiettime/internal/ui"
	"github.com/sarangchurch/quiettime/internal/ui/pages"
)

type ProfileHandler struct {
	userService *service.UserService
}

func NewProfileHandler(userService *service.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

func (h *ProfileHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())
	ui.Render(w, r, pages.Profile(profile, user.Email))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := r.ParseForm()
	if err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	_, err = h.userService.UpdateProfile(
		user.ID,
		r.PostFormValue("full_name"),
		r.PostFormValue("share_with_leaders") != "",
	)
	if err != nil {
		slog.Warn("profile update rejected", "user_id", user.ID, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/app/profile", http.StatusSeeOther)
}
