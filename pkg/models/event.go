package models

import (
	"encoding/json"
	"time"
)

// RawRecord is a single event as delivered by the activity feed, before
// validation or normalization. Only ID, Type, Repo.Name, Actor and
// CreatedAt are required; everything else is optional. Absent optional
// fields are nil so the transformer can apply its defaults.
type RawRecord struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Repo      *RepoRef        `json:"repo,omitempty"`
	Actor     *ActorRef       `json:"actor,omitempty"`
	Org       *OrgRef         `json:"org,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Public    *bool           `json:"public,omitempty"`
	CreatedAt string          `json:"created_at"`
}

// RepoRef is the repository reference embedded in a raw record.
// Name is the composite "owner/name" form.
type RepoRef struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// ActorRef is the acting user reference embedded in a raw record.
type ActorRef struct {
	ID    int64  `json:"id,omitempty"`
	Login string `json:"login"`
	URL   string `json:"url,omitempty"`
}

// OrgRef is the organization reference embedded in a raw record.
type OrgRef struct {
	ID    int64  `json:"id,omitempty"`
	Login string `json:"login"`
}

// Event is the normalized row persisted to the github_events table.
// The calendar fields (HourOfDay, DayOfWeek, Month, Year) are always
// derived from CreatedAt in UTC and never set independently.
type Event struct {
	EventID     string          `db:"event_id"     json:"event_id"`
	EventType   string          `db:"event_type"   json:"event_type"`
	RepoName    string          `db:"repo_name"    json:"repo_name"`
	RepoOwner   string          `db:"repo_owner"   json:"repo_owner"`
	ActorLogin  string          `db:"actor_login"  json:"actor_login"`
	OrgLogin    string          `db:"org_login"    json:"org_login"`
	CreatedAt   time.Time       `db:"created_at"   json:"created_at"`
	IsPublic    bool            `db:"is_public"    json:"is_public"`
	Payload     json.RawMessage `db:"payload"      json:"payload"`
	RawRecord   json.RawMessage `db:"raw_record"   json:"raw_record"`
	ProcessedAt time.Time       `db:"processed_at" json:"processed_at"`
	HourOfDay   int             `db:"hour_of_day"  json:"hour_of_day"`
	DayOfWeek   string          `db:"day_of_week"  json:"day_of_week"`
	Month       string          `db:"month"        json:"month"`
	Year        int             `db:"year"         json:"year"`
}
