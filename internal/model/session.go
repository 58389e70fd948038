package model

import (
	"time"
)

// Session is a server-side staff session. The browser only holds the opaque
// token; everything else lives in the database.
type Session struct {
	Token     string    `db:"token"`
	StaffID   string    `db:"staff_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
