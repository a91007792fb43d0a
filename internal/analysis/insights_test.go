package analysis

import (
	"testing"
	"time"

	"github.com/ghpulse/ghpulse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *models.QualityReport {
	first := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	last := time.Date(2024, 1, 3, 18, 30, 0, 0, time.UTC)
	return &models.QualityReport{
		TotalEvents:      1200,
		EventsByType:     map[string]int64{"PushEvent": 900, "WatchEvent": 300},
		FirstEventAt:     &first,
		LastEventAt:      &last,
		UniqueRepos:      12,
		UniqueActors:     340,
		UniqueEventTypes: 2,
	}
}

func TestBuildInsights(t *testing.T) {
	types := []models.EventTypeCount{
		{EventType: "PushEvent", Count: 900, Percentage: 75.0},
	}
	repos := []models.RepoActivity{
		{RepoName: "pandas-dev/pandas", TotalEvents: 400, UniqueContributors: 57},
	}
	hours := []models.HourlyActivity{
		{HourOfDay: 9, Count: 80},
		{HourOfDay: 14, Count: 220},
		{HourOfDay: 23, Count: 12},
	}

	insights := buildInsights(sampleReport(), types, repos, hours)
	require.NotEmpty(t, insights)

	assert.Contains(t, insights[0], "1200 events")
	assert.Contains(t, insights[0], "12 repositories")

	joined := ""
	for _, line := range insights {
		joined += line + "\n"
	}
	assert.Contains(t, joined, "2024-01-01 10:00")
	assert.Contains(t, joined, "PushEvent")
	assert.Contains(t, joined, "75.0%")
	assert.Contains(t, joined, "pandas-dev/pandas")
	assert.Contains(t, joined, "14:00 UTC")
}

func TestBuildInsights_EmptyStore(t *testing.T) {
	insights := buildInsights(&models.QualityReport{}, nil, nil, nil)
	require.Len(t, insights, 1)
	assert.Equal(t, "no events loaded yet", insights[0])
}

func TestBuildInsights_PartialData(t *testing.T) {
	report := sampleReport()
	report.FirstEventAt = nil
	report.LastEventAt = nil

	insights := buildInsights(report, nil, nil, nil)
	require.NotEmpty(t, insights)
	for _, line := range insights {
		assert.NotContains(t, line, "0001-01-01", "zero times must not leak into insights")
	}
}

func TestBusiestHour(t *testing.T) {
	_, ok := busiestHour(nil)
	assert.False(t, ok)

	hour, ok := busiestHour([]models.HourlyActivity{
		{HourOfDay: 3, Count: 5},
		{HourOfDay: 20, Count: 50},
		{HourOfDay: 7, Count: 50},
	})
	require.True(t, ok)
	assert.Equal(t, 20, hour, "first of tied hours wins")
}
