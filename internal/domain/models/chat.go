package models

import "time"

// Support message sender roles.
const (
	SenderCustomer = "customer"
	SenderSupport  = "support"
)

// SupportMessage is one message in a user's support thread. Each user has a
// single thread shared with the support team.
type SupportMessage struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	SenderRole string    `json:"sender_role"`
	Body       string    `json:"body"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

// SupportThread summarizes a user's thread for the admin inbox.
type SupportThread struct {
	UserID        int64     `json:"user_id"`
	UserEmail     string    `json:"user_email"`
	UserFullName  string    `json:"user_full_name"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int64     `json:"unread_count"`
}
