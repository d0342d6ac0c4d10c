package middleware

import (
	"net/http"

	"github.com/sarangchurch/quiettime/internal/ctxkeys"
	"github.com/sarangchurch/quiettime/internal/devotion"
)

// WithToday resolves the canonical calendar date once per request in the
// congregation's time zone and stores it in the context. Handlers never
// compute "today" themselves, so a request straddling midnight sees a
// single consistent date.
func WithToday(clock *devotion.Clock) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithToday(r.Context(), clock.Today())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
