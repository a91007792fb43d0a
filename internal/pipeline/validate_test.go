package pipeline

import (
	"testing"

	"github.com/ghpulse/ghpulse/pkg/models"
)

func validRecord() *models.RawRecord {
	return &models.RawRecord{
		ID:        "41234567890",
		Type:      "PushEvent",
		Repo:      &models.RepoRef{ID: 101, Name: "pandas-dev/pandas"},
		Actor:     &models.ActorRef{ID: 7, Login: "octocat"},
		CreatedAt: "2024-01-01T10:00:00Z",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.RawRecord)
		want   bool
	}{
		{
			name:   "complete record",
			mutate: func(r *models.RawRecord) {},
			want:   true,
		},
		{
			name:   "missing id",
			mutate: func(r *models.RawRecord) { r.ID = "" },
			want:   false,
		},
		{
			name:   "missing type",
			mutate: func(r *models.RawRecord) { r.Type = "" },
			want:   false,
		},
		{
			name:   "missing repo",
			mutate: func(r *models.RawRecord) { r.Repo = nil },
			want:   false,
		},
		{
			name:   "repo without name",
			mutate: func(r *models.RawRecord) { r.Repo = &models.RepoRef{ID: 101} },
			want:   false,
		},
		{
			name:   "missing actor",
			mutate: func(r *models.RawRecord) { r.Actor = nil },
			want:   false,
		},
		{
			name:   "missing created_at",
			mutate: func(r *models.RawRecord) { r.CreatedAt = "" },
			want:   false,
		},
		{
			name:   "actor without login is still structurally valid",
			mutate: func(r *models.RawRecord) { r.Actor = &models.ActorRef{ID: 7} },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)
			if got := Validate(rec); got != tt.want {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidate_NilRecord(t *testing.T) {
	if Validate(nil) {
		t.Error("nil record should not validate")
	}
}
