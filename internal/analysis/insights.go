package analysis

import (
	"context"
	"fmt"

	"github.com/ghpulse/ghpulse/internal/store"
	"github.com/ghpulse/ghpulse/pkg/models"
)

// Analyzer produces human-readable insight lines from the loaded store.
// It is read-only; all aggregation happens in SQL on the store side.
type Analyzer struct {
	store store.Store
}

func NewAnalyzer(s store.Store) *Analyzer {
	return &Analyzer{store: s}
}

// Insights summarizes the current dataset. An empty store yields a
// single line saying so rather than an error; the quality gate, not the
// analyzer, decides whether that fails the run.
func (a *Analyzer) Insights(ctx context.Context) ([]string, error) {
	report, err := a.store.QualityReport(ctx)
	if err != nil {
		return nil, fmt.Errorf("quality report: %w", err)
	}

	types, err := a.store.EventTypeBreakdown(ctx, 3)
	if err != nil {
		return nil, fmt.Errorf("event type breakdown: %w", err)
	}

	repos, err := a.store.TopRepositories(ctx, 3)
	if err != nil {
		return nil, fmt.Errorf("top repositories: %w", err)
	}

	hours, err := a.store.HourlyActivity(ctx)
	if err != nil {
		return nil, fmt.Errorf("hourly activity: %w", err)
	}

	return buildInsights(report, types, repos, hours), nil
}

func buildInsights(report *models.QualityReport, types []models.EventTypeCount,
	repos []models.RepoActivity, hours []models.HourlyActivity) []string {

	if !report.Healthy() {
		return []string{"no events loaded yet"}
	}

	insights := []string{
		fmt.Sprintf("%d events across %d repositories by %d actors",
			report.TotalEvents, report.UniqueRepos, report.UniqueActors),
	}

	if report.FirstEventAt != nil && report.LastEventAt != nil {
		insights = append(insights, fmt.Sprintf("activity spans %s to %s",
			report.FirstEventAt.Format("2006-01-02 15:04"),
			report.LastEventAt.Format("2006-01-02 15:04")))
	}

	if len(types) > 0 {
		insights = append(insights, fmt.Sprintf("most common event type is %s (%.1f%% of all events)",
			types[0].EventType, types[0].Percentage))
	}

	if len(repos) > 0 {
		insights = append(insights, fmt.Sprintf("most active repository is %s with %d events from %d contributors",
			repos[0].RepoName, repos[0].TotalEvents, repos[0].UniqueContributors))
	}

	if busiest, ok := busiestHour(hours); ok {
		insights = append(insights, fmt.Sprintf("busiest hour is %02d:00 UTC", busiest))
	}

	return insights
}

func busiestHour(hours []models.HourlyActivity) (int, bool) {
	if len(hours) == 0 {
		return 0, false
	}
	best := hours[0]
	for _, h := range hours[1:] {
		if h.Count > best.Count {
			best = h
		}
	}
	return best.HourOfDay, true
}
