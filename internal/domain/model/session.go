package model

import "time"

// Session is a persisted bearer token with expiry.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given moment.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
