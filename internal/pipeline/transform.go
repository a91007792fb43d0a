package pipeline

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ghpulse/ghpulse/pkg/models"
)

// timestampLayouts are tried in order when parsing created_at.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Transformer maps raw feed records into normalized rows. The clock is
// injectable so tests can pin processed_at.
type Transformer struct {
	now func() time.Time
}

func NewTransformer() *Transformer {
	return &Transformer{now: time.Now}
}

func NewTransformerWithClock(now func() time.Time) *Transformer {
	return &Transformer{now: now}
}

// Transform maps one raw record into a normalized row. It returns nil
// when the record fails validation or its created_at cannot be parsed;
// the caller counts those as skipped. All other failure paths are
// defaulted, never raised: missing actor login, org and repo fields
// become empty strings, a missing public flag defaults to true, and an
// absent payload serializes as an empty object.
func (t *Transformer) Transform(rec *models.RawRecord) *models.Event {
	if !Validate(rec) {
		return nil
	}

	createdAt, ok := parseTimestamp(rec.CreatedAt)
	if !ok {
		return nil
	}
	createdAt = createdAt.UTC()

	repoName := rec.Repo.Name
	repoOwner := ""
	if i := strings.Index(repoName, "/"); i >= 0 {
		repoOwner = repoName[:i]
	}

	orgLogin := ""
	if rec.Org != nil {
		orgLogin = rec.Org.Login
	}

	isPublic := true
	if rec.Public != nil {
		isPublic = *rec.Public
	}

	payload := rec.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(`{}`)
	}

	// Retained for audit and debugging; canonical key order so the stored
	// blob is stable across feed serializations of the same record.
	raw, err := json.Marshal(canonicalize(rec))
	if err != nil {
		return nil
	}

	return &models.Event{
		EventID:     rec.ID,
		EventType:   rec.Type,
		RepoName:    repoName,
		RepoOwner:   repoOwner,
		ActorLogin:  rec.Actor.Login,
		OrgLogin:    orgLogin,
		CreatedAt:   createdAt,
		IsPublic:    isPublic,
		Payload:     payload,
		RawRecord:   raw,
		ProcessedAt: t.now().UTC(),
		HourOfDay:   createdAt.Hour(),
		DayOfWeek:   createdAt.Weekday().String(),
		Month:       createdAt.Format("2006-01"),
		Year:        createdAt.Year(),
	}
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
