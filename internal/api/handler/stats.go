// Package handler contains the read-side HTTP handlers. They expose the
// quality report and the aggregate statistics computed by the store; the
// chart-rendering layer consumes these same structures.
package handler

import (
	"net/http"
	"strconv"

	"github.com/ghpulse/ghpulse/internal/api/response"
	"github.com/ghpulse/ghpulse/internal/store"
)

const defaultLimit = 10

// Report serves the post-load quality report.
func Report(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := s.QualityReport(r.Context())
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "STORE_ERROR",
				"Failed to build quality report", nil)
			return
		}
		response.JSON(w, report)
	}
}

// EventTypes serves the event-type breakdown with percentages.
func EventTypes(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := s.EventTypeBreakdown(r.Context(), limitParam(r))
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "STORE_ERROR",
				"Failed to query event types", nil)
			return
		}
		response.JSON(w, counts)
	}
}

// TopRepositories serves the most active repositories.
func TopRepositories(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		repos, err := s.TopRepositories(r.Context(), limitParam(r))
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "STORE_ERROR",
				"Failed to query repositories", nil)
			return
		}
		response.JSON(w, repos)
	}
}

// TopContributors serves the most active actors.
func TopContributors(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actors, err := s.TopContributors(r.Context(), limitParam(r))
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "STORE_ERROR",
				"Failed to query contributors", nil)
			return
		}
		response.JSON(w, actors)
	}
}

// HourlyActivity serves event counts by hour of day.
func HourlyActivity(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hours, err := s.HourlyActivity(r.Context())
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "STORE_ERROR",
				"Failed to query hourly activity", nil)
			return
		}
		response.JSON(w, hours)
	}
}

func limitParam(r *http.Request) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return defaultLimit
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultLimit
	}
	return n
}
