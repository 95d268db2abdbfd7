package models

import "time"

// Friend request states. Accepted and rejected are terminal: a resolved
// request is never reopened.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// FriendRequest is the handshake that creates a friendship edge.
type FriendRequest struct {
	ID         string    `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Friend is a user seen through the friend list.
type Friend struct {
	UserID   int64     `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Since    time.Time `json:"since"`
}
