package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/ghpulse/ghpulse/pkg/models"
)

func decodeRecord(t *testing.T, raw string) *models.RawRecord {
	t.Helper()
	var rec models.RawRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	return &rec
}

func TestFingerprint_OrderIndependent(t *testing.T) {
	a := decodeRecord(t, `{
		"id": "1", "type": "PushEvent",
		"repo": {"name": "a/b", "id": 5},
		"actor": {"login": "u", "id": 9},
		"created_at": "2024-01-01T10:00:00Z",
		"payload": {"size": 3, "ref": "refs/heads/main"}
	}`)
	b := decodeRecord(t, `{
		"payload": {"ref": "refs/heads/main", "size": 3},
		"created_at": "2024-01-01T10:00:00Z",
		"actor": {"id": 9, "login": "u"},
		"repo": {"id": 5, "name": "a/b"},
		"type": "PushEvent", "id": "1"
	}`)

	if Fingerprint(a) != Fingerprint(b) {
		t.Errorf("reordered fields should produce the same fingerprint:\n  %s\n  %s",
			Fingerprint(a), Fingerprint(b))
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	rec := validRecord()
	if Fingerprint(rec) != Fingerprint(rec) {
		t.Error("fingerprint of the same record should be stable")
	}
}

func TestFingerprint_DifferentContent(t *testing.T) {
	a := validRecord()
	b := validRecord()
	b.ID = "99999"
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("records with different content should have different fingerprints")
	}
}

func TestFingerprint_PayloadContentMatters(t *testing.T) {
	a := validRecord()
	a.Payload = json.RawMessage(`{"ref": "refs/heads/main"}`)
	b := validRecord()
	b.Payload = json.RawMessage(`{"ref": "refs/heads/dev"}`)
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("payload differences should change the fingerprint")
	}
}

func TestFingerprint_AbsentVsPresentPublic(t *testing.T) {
	a := validRecord()
	public := true
	b := validRecord()
	b.Public = &public
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("an explicitly set public flag is different content from an absent one")
	}
}

func TestFingerprint_IsLowercaseHex(t *testing.T) {
	fp := Fingerprint(validRecord())
	if len(fp) != 64 {
		t.Errorf("expected 64 char hex string, got %d chars: %s", len(fp), fp)
	}
	for _, c := range fp {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Errorf("unexpected character %q in fingerprint %s", c, fp)
		}
	}
}
