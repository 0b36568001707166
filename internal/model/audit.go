package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only record of an administrative action. Entries are
// never mutated or deleted.
type AuditLog struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	Event     string         `json:"event" db:"event"`
	User      string         `json:"user" db:"user_name"`
	UserID    string         `json:"userId" db:"user_id"`
	Timestamp time.Time      `json:"timestamp" db:"created_at"`
	Metadata  map[string]any `json:"metadata,omitempty" db:"metadata"`
}
