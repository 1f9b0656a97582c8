package model

import "time"

// MessageID identifies a generated roster message
type MessageID string

// CwlMessage is a roster message that was generated and saved
type CwlMessage struct {
	ID        MessageID `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
