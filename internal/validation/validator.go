package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/message-board/internal/models"
)

// Fixed messages returned to clients
var (
	msgBodyRequired = "Comment body is required."
	msgBodyTooLong  = fmt.Sprintf("Comment body exceeds %d characters.", models.MaxCommentBodyLength)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NormalizeBody trims a comment body and rejects it when empty or longer
// than MaxCommentBodyLength code points. The body is never shortened.
// Trimming removes all Unicode white space, including U+00A0.
func NormalizeBody(body string) (string, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return "", &ValidationError{Field: "body", Message: msgBodyRequired}
	}

	if n := utf8.RuneCountInString(trimmed); n > models.MaxCommentBodyLength {
		return "", &ValidationError{Field: "body", Message: msgBodyTooLong, Value: n}
	}

	return trimmed, nil
}

// NormalizeNickname trims a nickname, substitutes DefaultNickname when empty
// and silently truncates to MaxNicknameLength code points.
func NormalizeNickname(nickname string) string {
	trimmed := strings.TrimSpace(nickname)
	if trimmed == "" {
		return models.DefaultNickname
	}
	return truncateRunes(trimmed, models.MaxNicknameLength)
}

// CommentInput is the normalized form of a comment submission
type CommentInput struct {
	MessageID int64
	Nickname  string
	Body      string
}

// NormalizeComment applies both rules. Nickname handling cannot fail.
func NormalizeComment(messageID int64, nickname, body string) (*CommentInput, error) {
	normalizedBody, err := NormalizeBody(body)
	if err != nil {
		return nil, err
	}

	return &CommentInput{
		MessageID: messageID,
		Nickname:  NormalizeNickname(nickname),
		Body:      normalizedBody,
	}, nil
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
