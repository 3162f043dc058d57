package models

import (
	"time"
)

// DefaultNickname is shown for authors who did not give a name
const DefaultNickname = "Anonymous"

// Message represents a top-level post on the board.
// Messages are created outside this service and are read-only here.
type Message struct {
	ID        int64     `json:"id" db:"id"`
	Nickname  *string   `json:"nickname,omitempty" db:"nickname"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DisplayName returns the nickname to render, falling back to DefaultNickname.
// The fallback is applied at render time only and never written back.
func (m *Message) DisplayName() string {
	if m.Nickname == nil || *m.Nickname == "" {
		return DefaultNickname
	}
	return *m.Nickname
}

// MessageIDs extracts the identifiers of messages, preserving order
func MessageIDs(messages []*Message) []int64 {
	ids := make([]int64, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	return ids
}

// BoardCounts reports table sizes for the metrics endpoint
type BoardCounts struct {
	Messages int `json:"messages"`
	Comments int `json:"comments"`
}
