package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sarangchurch/quiettime/internal/ctxkeys"
	"github.com/sarangchurch/quiettime/internal/service"
	"github.com/sarangchurch/quiettime/internal/ui"
	"github.com/sarangchurch/quiettime/internal/ui/pages"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Login(""))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		ui.Render(w, r, pages.Login("Invalid form submission."))
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, profile, err := h.authService.Login(email, password)
	if err != nil {
		message := "Invalid email or password."
		if errors.Is(err, service.ErrAccountLocked) {
			message = "This account is locked. Contact your group leader."
		} else if !errors.Is(err, service.ErrInvalidCredentials) {
			slog.Error("login failed", "error", err)
			message = "Something went wrong. Please try again."
		}
		w.WriteHeader(http.StatusUnauthorized)
		ui.Render(w, r, pages.Login(message))
		return
	}

	token, err := h.authService.GenerateJWT(user)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		ui.Render(w, r, pages.Login("Something went wrong. Please try again."))
		return
	}

	h.authService.SetJWTCookie(w, token, time.Now().Add(h.authService.JWTExpiry()))

	if profile.FirstLogin {
		http.Redirect(w, r, "/auth/change-password", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/app/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearJWTCookie(w)
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (h *AuthHandler) ChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())
	ui.Render(w, r, pages.ChangePassword(profile != nil && profile.FirstLogin, ""))
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())
	forced := profile != nil && profile.FirstLogin

	err := r.ParseForm()
	if err != nil {
		ui.Render(w, r, pages.ChangePassword(forced, "Invalid form submission."))
		return
	}

	err = h.authService.ChangePassword(
		user.ID,
		r.PostFormValue("current_password"),
		r.PostFormValue("new_password"),
		r.PostFormValue("confirm_password"),
	)
	if err != nil {
		message := "Something went wrong. Please try again."
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			message = "The new passwords do not match."
		case errors.Is(err, service.ErrInvalidCredentials):
			message = "Your current password is incorrect."
		case errors.Is(err, service.ErrSamePassword):
			message = "The new password must differ from the current one."
		default:
			// remaining cases are password policy violations
			message = err.Error()
			slog.Warn("password change rejected", "user_id", user.ID, "error", err)
		}
		w.WriteHeader(http.StatusBadRequest)
		ui.Render(w, r, pages.ChangePassword(forced, message))
		return
	}

	http.Redirect(w, r, "/app/dashboard", http.StatusSeeOther)
}
