package domain

import "time"

// Message is a discussion entry on a case. The author's username is
// denormalized at write time and not re-resolved on later renames.
type Message struct {
	ID        string
	CaseID    string
	UserID    string
	Username  string
	Content   string
	CreatedAt time.Time
}
