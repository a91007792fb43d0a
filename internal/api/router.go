package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/ghpulse/ghpulse/internal/api/middleware"
	"github.com/ghpulse/ghpulse/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
// RateLimit is optional; when nil the stats routes are unthrottled.
type Dependencies struct {
	RateLimit *mw.RateLimit

	HealthHandler       http.HandlerFunc
	ReportHandler       http.HandlerFunc
	EventTypesHandler   http.HandlerFunc
	RepositoriesHandler http.HandlerFunc
	ContributorsHandler http.HandlerFunc
	HourlyHandler       http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		r.Get("/api/v1/report", orNotImplemented(deps.ReportHandler))
		r.Get("/api/v1/stats/event-types", orNotImplemented(deps.EventTypesHandler))
		r.Get("/api/v1/stats/repositories", orNotImplemented(deps.RepositoriesHandler))
		r.Get("/api/v1/stats/contributors", orNotImplemented(deps.ContributorsHandler))
		r.Get("/api/v1/stats/hourly", orNotImplemented(deps.HourlyHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
