package pipeline

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ghpulse/ghpulse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
}

func TestTransform_FullRecord(t *testing.T) {
	public := false
	rec := &models.RawRecord{
		ID:        "41234567890",
		Type:      "PushEvent",
		Repo:      &models.RepoRef{ID: 101, Name: "pandas-dev/pandas"},
		Actor:     &models.ActorRef{ID: 7, Login: "octocat"},
		Org:       &models.OrgRef{Login: "pandas-dev"},
		Public:    &public,
		Payload:   json.RawMessage(`{"size": 2, "ref": "refs/heads/main"}`),
		CreatedAt: "2024-01-01T10:30:00Z",
	}

	row := NewTransformerWithClock(fixedClock()).Transform(rec)
	require.NotNil(t, row)

	assert.Equal(t, "41234567890", row.EventID)
	assert.Equal(t, "PushEvent", row.EventType)
	assert.Equal(t, "pandas-dev/pandas", row.RepoName)
	assert.Equal(t, "pandas-dev", row.RepoOwner)
	assert.Equal(t, "octocat", row.ActorLogin)
	assert.Equal(t, "pandas-dev", row.OrgLogin)
	assert.False(t, row.IsPublic)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC), row.CreatedAt)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), row.ProcessedAt)
	assert.JSONEq(t, `{"size": 2, "ref": "refs/heads/main"}`, string(row.Payload))
	assert.NotEmpty(t, row.RawRecord)
}

func TestTransform_CalendarFieldsDerivedFromCreatedAt(t *testing.T) {
	tests := []struct {
		createdAt string
		hour      int
		dayOfWeek string
		month     string
		year      int
	}{
		{"2024-01-01T10:00:00Z", 10, "Monday", "2024-01", 2024},
		{"2024-02-17T23:59:59Z", 23, "Saturday", "2024-02", 2024},
		{"2023-12-31T00:00:00Z", 0, "Sunday", "2023-12", 2023},
		// Offset timestamps normalize to UTC before derivation.
		{"2024-01-01T01:30:00+05:30", 20, "Sunday", "2023-12", 2023},
	}

	tr := NewTransformerWithClock(fixedClock())
	for _, tt := range tests {
		t.Run(tt.createdAt, func(t *testing.T) {
			rec := validRecord()
			rec.CreatedAt = tt.createdAt

			row := tr.Transform(rec)
			require.NotNil(t, row)
			assert.Equal(t, tt.hour, row.HourOfDay)
			assert.Equal(t, tt.dayOfWeek, row.DayOfWeek)
			assert.Equal(t, tt.month, row.Month)
			assert.Equal(t, tt.year, row.Year)
		})
	}
}

func TestTransform_RepoOwnerDerivation(t *testing.T) {
	tests := []struct {
		repoName string
		owner    string
	}{
		{"pandas-dev/pandas", "pandas-dev"},
		{"a/b/c", "a"},
		{"no-separator", ""},
		{"/leading", ""},
	}

	tr := NewTransformerWithClock(fixedClock())
	for _, tt := range tests {
		t.Run(tt.repoName, func(t *testing.T) {
			rec := validRecord()
			rec.Repo.Name = tt.repoName

			row := tr.Transform(rec)
			require.NotNil(t, row)
			assert.Equal(t, tt.owner, row.RepoOwner)
		})
	}
}

func TestTransform_Defaults(t *testing.T) {
	rec := validRecord()
	rec.Org = nil
	rec.Public = nil
	rec.Payload = nil

	row := NewTransformerWithClock(fixedClock()).Transform(rec)
	require.NotNil(t, row)

	assert.Equal(t, "", row.OrgLogin, "missing org defaults to empty string, not null")
	assert.True(t, row.IsPublic, "missing public flag defaults to true")
	assert.JSONEq(t, `{}`, string(row.Payload))
}

func TestTransform_UnparseableTimestampReturnsNil(t *testing.T) {
	rec := validRecord()
	rec.CreatedAt = "not-a-date"

	assert.Nil(t, NewTransformerWithClock(fixedClock()).Transform(rec))
}

func TestTransform_InvalidRecordReturnsNil(t *testing.T) {
	rec := validRecord()
	rec.Repo = nil

	assert.Nil(t, NewTransformerWithClock(fixedClock()).Transform(rec))
}

func TestTransform_AcceptsSpaceSeparatedTimestamp(t *testing.T) {
	rec := validRecord()
	rec.CreatedAt = "2024-01-01 10:00:00"

	row := NewTransformerWithClock(fixedClock()).Transform(rec)
	require.NotNil(t, row)
	assert.Equal(t, 10, row.HourOfDay)
}
