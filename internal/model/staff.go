package model

import (
	"time"
)

// StaffAccount is a staff login for the dashboard. Accounts are provisioned
// with the staffctl command, never through an HTTP endpoint.
type StaffAccount struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
