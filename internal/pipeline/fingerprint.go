package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/ghpulse/ghpulse/pkg/models"
)

// Fingerprint computes a stable SHA-256 digest of a raw record's full
// content. The record is serialized through a canonical map so that two
// records with identical content produce the same digest regardless of
// the field order of the JSON they were decoded from.
func Fingerprint(rec *models.RawRecord) string {
	b, _ := json.Marshal(canonicalize(rec))
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// canonicalize flattens a record into nested maps. encoding/json sorts
// map keys on marshal, which gives the order-independent serialization.
func canonicalize(rec *models.RawRecord) map[string]any {
	canon := map[string]any{
		"id":         rec.ID,
		"type":       rec.Type,
		"created_at": rec.CreatedAt,
	}
	if rec.Repo != nil {
		canon["repo"] = map[string]any{"id": rec.Repo.ID, "name": rec.Repo.Name, "url": rec.Repo.URL}
	}
	if rec.Actor != nil {
		canon["actor"] = map[string]any{"id": rec.Actor.ID, "login": rec.Actor.Login, "url": rec.Actor.URL}
	}
	if rec.Org != nil {
		canon["org"] = map[string]any{"id": rec.Org.ID, "login": rec.Org.Login}
	}
	if rec.Public != nil {
		canon["public"] = *rec.Public
	}
	if len(rec.Payload) > 0 {
		var payload any
		if err := json.Unmarshal(rec.Payload, &payload); err == nil {
			canon["payload"] = payload
		} else {
			canon["payload"] = string(rec.Payload)
		}
	}
	return canon
}
