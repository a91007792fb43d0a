package pipeline

// Deduplicator tracks the fingerprints seen during one collection pass.
// It is exclusively owned by a single run and is not safe for concurrent
// use; construct a fresh instance per run.
type Deduplicator struct {
	seen map[string]struct{}
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]struct{})}
}

// Admit returns true and records the fingerprint on first sight, false
// on repeat.
func (d *Deduplicator) Admit(fingerprint string) bool {
	if _, ok := d.seen[fingerprint]; ok {
		return false
	}
	d.seen[fingerprint] = struct{}{}
	return true
}

// Len returns the number of distinct fingerprints admitted so far.
func (d *Deduplicator) Len() int {
	return len(d.seen)
}
