package domain

import "time"

// Message is immutable once created, except for the read flag which only
// ever transitions false -> true.
type Message struct {
	ID          int       `json:"id" db:"id"`
	SenderID    int       `json:"sender_id" db:"sender_id"`
	RecipientID int       `json:"recipient_id" db:"recipient_id"`
	Content     string    `json:"content" db:"content"`
	IsRead      bool      `json:"is_read" db:"is_read"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
