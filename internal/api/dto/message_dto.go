package dto

import "time"

// PostMessageRequest payload for appending a discussion message.
type PostMessageRequest struct {
	Content string `json:"content"`
}

// MessageResponse is the wire form of a discussion message.
type MessageResponse struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"caseId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
