package model

import "time"

// Base contains common fields for all stored entities. Identifiers are
// time-based strings (see pkg/idgen), not UUIDs, matching the card-number
// style IDs printed on patient paperwork.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONMap represents a generic JSON object
type JSONMap map[string]interface{}
