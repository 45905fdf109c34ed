package analytics

import "time"

type EventType string

const (
	EventSearch     EventType = "search"
	EventZeroResult EventType = "zero_result"
)

// SearchEvent describes one executed query. Document IDs are 0-based.
// Events from the same process share a RunID.
type SearchEvent struct {
	RunID     string    `json:"run_id"`
	Type      EventType `json:"type"`
	Query     string    `json:"query"`
	Terms     []string  `json:"terms"`
	Relevant  int       `json:"relevant"`
	TopDocID  int       `json:"top_doc_id"`
	TopAngle  float64   `json:"top_angle"`
	LatencyUs int64     `json:"latency_us"`
	CacheHit  bool      `json:"cache_hit"`
	Corpus    string    `json:"corpus"`
	Timestamp time.Time `json:"timestamp"`
}
