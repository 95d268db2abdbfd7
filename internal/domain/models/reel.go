package models

import "time"

// ReelLifetime is how long a reel stays visible after posting.
const ReelLifetime = 24 * time.Hour

// Reel is a short-lived user media post, story style.
type Reel struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	MediaURL  string    `json:"media_url"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
