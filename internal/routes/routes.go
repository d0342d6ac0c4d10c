package routes

import (
	"io/fs"
	"net/http"

	"github.com/sarangchurch/quiettime/assets"
	"github.com/sarangchurch/quiettime/internal/app"
	"github.com/sarangchurch/quiettime/internal/handler"
	"github.com/sarangchurch/quiettime/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler()
	auth := handler.NewAuthHandler(app.AuthService)
	dashboard := handler.NewDashboardHandler(app.CheckinService)
	checkin := handler.NewCheckinHandler(app.CheckinService)
	devotionPlan := handler.NewDevotionPlanHandler(app.DevotionPlanService)
	bible := handler.NewBibleHandler(app.BibleService)
	reading := handler.NewReadingHandler(app.ReadingService)
	profile := handler.NewProfileHandler(app.UserService)
	admin := handler.NewAdminHandler(app.UserService, app.CheckinService, app.ReadingService)
	guide := handler.NewGuideHandler(app.GuideService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	sub, _ := fs.Sub(assets.AssetsFS, ".")
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(sub))))

	// Home
	mux.HandleFunc("GET /{$}", home.Home)

	// Guide content
	mux.HandleFunc("GET /guide", guide.Index)
	mux.HandleFunc("GET /guide/{slug}", guide.Page)

	// Auth (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("GET /auth/login", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("POST /auth/login", rateLimiter(middleware.RequireGuest(auth.Login)))
	mux.HandleFunc("POST /auth/logout", auth.Logout)
	mux.HandleFunc("GET /auth/change-password", middleware.RequireAuth(auth.ChangePasswordPage))
	mux.HandleFunc("POST /auth/change-password", middleware.RequireAuth(auth.ChangePassword))

	// ============================================================================
	// MEMBER PAGES (/app/*)
	// ============================================================================

	mux.HandleFunc("GET /app/dashboard", middleware.RequireAuth(dashboard.Dashboard))
	mux.HandleFunc("GET /app/devotion", middleware.RequireAuth(checkin.DevotionPage))
	mux.HandleFunc("GET /app/bible", middleware.RequireAuth(bible.BiblePage))
	mux.HandleFunc("GET /app/reading", middleware.RequireAuth(reading.ReadingPage))
	mux.HandleFunc("GET /app/reading/{id}", middleware.RequireAuth(reading.PlanPage))
	mux.HandleFunc("GET /app/profile", middleware.RequireAuth(profile.ProfilePage))
	mux.HandleFunc("POST /app/profile", middleware.RequireAuth(profile.Update))

	// ============================================================================
	// JSON API (/api/*)
	// ============================================================================

	// Check-ins
	mux.HandleFunc("GET /api/checkins", middleware.RequireAuth(checkin.Month))
	mux.HandleFunc("GET /api/checkins/stats", middleware.RequireAuth(checkin.Stats))
	mux.HandleFunc("POST /api/checkins", middleware.RequireAuth(checkin.Save))
	mux.HandleFunc("DELETE /api/checkins/{id}", middleware.RequireAuth(checkin.Delete))

	// Devotion plans
	mux.HandleFunc("GET /api/devotion-plans", middleware.RequireAuth(devotionPlan.List))
	mux.HandleFunc("POST /api/devotion-plans", middleware.RequireAuth(devotionPlan.Create))
	mux.HandleFunc("PUT /api/devotion-plans/{id}", middleware.RequireAuth(devotionPlan.Update))
	mux.HandleFunc("DELETE /api/devotion-plans/{id}", middleware.RequireAuth(devotionPlan.Delete))

	// Bible progress
	mux.HandleFunc("GET /api/bible/progress", middleware.RequireAuth(bible.Progress))
	mux.HandleFunc("POST /api/bible/toggle", middleware.RequireAuth(bible.Toggle))
	mux.HandleFunc("POST /api/bible/books/mark", middleware.RequireAuth(bible.MarkBook))
	mux.HandleFunc("POST /api/bible/books/unmark", middleware.RequireAuth(bible.UnmarkBook))
	mux.HandleFunc("POST /api/bible/readthrough", middleware.RequireAuth(bible.CompleteReadthrough))

	// Reading plans
	mux.HandleFunc("POST /api/reading/plans", middleware.RequireAuth(reading.StartPlan))
	mux.HandleFunc("POST /api/reading/plans/{id}/completions", middleware.RequireAuth(reading.CompleteDate))
	mux.HandleFunc("DELETE /api/reading/plans/{id}/completions/{date}", middleware.RequireAuth(reading.UncompleteDate))
	mux.HandleFunc("POST /api/reading/plans/{id}/abandon", middleware.RequireAuth(reading.AbandonPlan))

	// ============================================================================
	// ADMIN (/admin/* and /api/admin/*)
	// ============================================================================

	// Leaders see the roster and can reset passwords; account lifecycle
	// stays admin-only.
	mux.HandleFunc("GET /admin/members", middleware.RequireLeader(admin.MembersPage))
	mux.HandleFunc("POST /admin/members", middleware.RequireAdmin(admin.Provision))
	mux.HandleFunc("POST /api/admin/members/{id}/reset-password", middleware.RequireLeader(admin.ResetPassword))
	mux.HandleFunc("POST /api/admin/members/{id}/role", middleware.RequireAdmin(admin.SetRole))
	mux.HandleFunc("POST /api/admin/members/{id}/lock", middleware.RequireAdmin(admin.SetLocked))
	mux.HandleFunc("DELETE /api/admin/members/{id}", middleware.RequireAdmin(admin.Delete))
	mux.HandleFunc("POST /api/admin/reading-templates", middleware.RequireLeader(admin.SeedTemplate))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.Home)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.AuthMiddleware(app.AuthService, app.UserService),
		middleware.WithToday(app.Clock),
		middleware.WithURLPath,
	)
}
