package models

import "time"

// AuditLogEntry records a sensitive action. Append-only and best-effort: a
// failed audit write never aborts the action that triggered it.
type AuditLogEntry struct {
	ID        int64
	ClientID  int64
	Action    string
	Details   string
	Origin    string
	CreatedAt time.Time
}
