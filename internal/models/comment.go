package models

import (
	"time"
)

// Comment represents a reply attached to a Message
type Comment struct {
	ID        int64     `json:"id" db:"id"`
	MessageID int64     `json:"message_id" db:"message_id"`
	Nickname  string    `json:"nickname" db:"nickname"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Limits applied to comment input, measured in Unicode code points
const (
	MaxCommentBodyLength = 240
	MaxNicknameLength    = 100
)

// CommentsByMessage groups comments by the message they reply to.
// Each group is ordered by creation time ascending.
type CommentsByMessage map[int64][]*Comment

// For returns the comments for a message, or nil if it has none
func (g CommentsByMessage) For(messageID int64) []*Comment {
	return g[messageID]
}

// CommentEnvelope is the JSON response body for every POST to the board
type CommentEnvelope struct {
	OK      bool     `json:"ok"`
	Comment *Comment `json:"comment,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Page is the data set handed to the renderer for GET requests
type Page struct {
	Messages  []*Message
	Comments  CommentsByMessage
	CSRFToken string
}
