package models

import "time"

// QualityReport is the post-load verification summary read back from the
// store. A zero TotalEvents report signals upstream failure even when the
// load itself reported success.
type QualityReport struct {
	TotalEvents      int64            `json:"total_events"`
	EventsByType     map[string]int64 `json:"events_by_type"`
	FirstEventAt     *time.Time       `json:"first_event_at,omitempty"`
	LastEventAt      *time.Time       `json:"last_event_at,omitempty"`
	UniqueRepos      int64            `json:"unique_repos"`
	UniqueActors     int64            `json:"unique_actors"`
	UniqueEventTypes int64            `json:"unique_event_types"`
}

// Healthy reports whether the store contains at least one event.
func (r *QualityReport) Healthy() bool {
	return r != nil && r.TotalEvents > 0
}

// EventTypeCount is one row of the event-type breakdown.
type EventTypeCount struct {
	EventType  string  `db:"event_type" json:"event_type"`
	Count      int64   `db:"count"      json:"count"`
	Percentage float64 `db:"percentage" json:"percentage"`
}

// RepoActivity summarizes activity for one repository.
type RepoActivity struct {
	RepoName           string    `db:"repo_name"           json:"repo_name"`
	TotalEvents        int64     `db:"total_events"        json:"total_events"`
	EventTypes         int64     `db:"event_types"         json:"event_types"`
	UniqueContributors int64     `db:"unique_contributors" json:"unique_contributors"`
	FirstEventAt       time.Time `db:"first_event_at"      json:"first_event_at"`
	LastEventAt        time.Time `db:"last_event_at"       json:"last_event_at"`
}

// ContributorActivity summarizes activity for one actor.
type ContributorActivity struct {
	ActorLogin  string `db:"actor_login"  json:"actor_login"`
	TotalEvents int64  `db:"total_events" json:"total_events"`
	EventTypes  int64  `db:"event_types"  json:"event_types"`
	Repos       int64  `db:"repos"        json:"repos"`
}

// HourlyActivity is the event count for one hour of the day (0-23).
type HourlyActivity struct {
	HourOfDay int   `db:"hour_of_day" json:"hour_of_day"`
	Count     int64 `db:"count"       json:"count"`
}
