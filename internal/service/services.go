package service

import (
	"context"

	"github.com/message-board/internal/models"
	"github.com/message-board/internal/repository"
	"github.com/rs/zerolog"
)

// BoardService is the persistence gateway for messages and comments
type BoardService interface {
	ListMessages(ctx context.Context) ([]*models.Message, error)
	ListCommentsFor(ctx context.Context, messageIDs []int64) (models.CommentsByMessage, error)
	CreateComment(ctx context.Context, messageID int64, nickname, body string) (*models.Comment, error)
	Counts(ctx context.Context) (*models.BoardCounts, error)
}

// Services holds all service interfaces
type Services struct {
	Board BoardService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	return &Services{
		Board: newBoardService(repos, log),
	}
}
