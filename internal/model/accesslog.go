package model

import "time"

// AccessLogEntry is append-only; nothing updates or deletes entries.
type AccessLogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ActorID   string    `json:"actor_id"`
	ActorName string    `json:"actor_name,omitempty"`
	Action    string    `json:"action"`
	Emergency bool      `json:"emergency,omitempty"`
}
