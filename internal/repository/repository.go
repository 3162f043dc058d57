package repository

import (
	"context"

	"github.com/message-board/internal/database"
	"github.com/message-board/internal/models"
)

// MessageRepository defines the interface for message data operations
type MessageRepository interface {
	List(ctx context.Context) ([]*models.Message, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByMessageIDs(ctx context.Context, messageIDs []int64) (models.CommentsByMessage, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Message MessageRepository
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Message: NewMessageRepo(db),
		Comment: NewCommentRepo(db),
	}
}
