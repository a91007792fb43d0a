package pipeline

import "github.com/ghpulse/ghpulse/pkg/models"

// Validate reports whether a raw record carries the minimum shape required
// to enter the pipeline: identifier, type, a repo with a name, an actor,
// and a created_at timestamp string. It fails closed and never panics;
// the caller counts rejects as skipped.
func Validate(rec *models.RawRecord) bool {
	if rec == nil {
		return false
	}
	if rec.ID == "" || rec.Type == "" || rec.CreatedAt == "" {
		return false
	}
	if rec.Repo == nil || rec.Repo.Name == "" {
		return false
	}
	if rec.Actor == nil {
		return false
	}
	return true
}
