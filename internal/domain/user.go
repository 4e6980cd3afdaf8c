package domain

import "time"

// User is a registered account. Admin accounts hold permissions over every
// case and message regardless of ownership.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
