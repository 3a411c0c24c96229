package cache

import (
	"encoding/json"
	"time"
)

// Record is the generic cache-with-expiry envelope stored for fetch
// outcomes. Failures are cacheable too (with a short TTL) so an
// upstream outage does not turn into a hot-retry storm.
type Record struct {
	Success  bool            `json:"success"`
	Payload  json.RawMessage `json:"payload,omitempty"`
	Errors   []string        `json:"errors,omitempty"`
	StoredAt time.Time       `json:"storedAt"`
}

// PutRecord serializes and stores a record under the namespaced key
// for the given normalized name.
func PutRecord(c Cache, normalized string, rec Record, ttl time.Duration) error {
	if rec.StoredAt.IsZero() {
		rec.StoredAt = time.Now().UTC()
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.Set(Key(normalized), data, ttl)
}

// GetRecord loads the record for a normalized name. The second return
// is false on miss or on an undecodable entry.
func GetRecord(c Cache, normalized string) (Record, bool) {
	data, ok := c.Get(Key(normalized))
	if !ok {
		return Record{}, false
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false
	}
	return rec, true
}
