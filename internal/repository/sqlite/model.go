package sqlite

import "time"

// SessionValue is one persisted key of the client session (token, cached user, ...)
type SessionValue struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
