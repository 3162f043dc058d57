package service

import (
	"context"

	"github.com/message-board/internal/models"
	"github.com/message-board/internal/repository"
	"github.com/message-board/internal/validation"
	"github.com/rs/zerolog"
)

// boardService is the concrete implementation of BoardService
type boardService struct {
	messageRepo repository.MessageRepository
	commentRepo repository.CommentRepository
	log         zerolog.Logger
}

func newBoardService(repos *repository.Repositories, log zerolog.Logger) *boardService {
	return &boardService{
		messageRepo: repos.Message,
		commentRepo: repos.Comment,
		log:         log.With().Str("service", "board").Logger(),
	}
}

// ListMessages returns all messages, newest first
func (s *boardService) ListMessages(ctx context.Context) ([]*models.Message, error) {
	messages, err := s.messageRepo.List(ctx)
	if err != nil {
		return nil, storeError("list messages", "Failed to load messages", err)
	}
	return messages, nil
}

// ListCommentsFor returns comments grouped by message for the given ids.
// Only ids in the set appear as keys.
func (s *boardService) ListCommentsFor(ctx context.Context, messageIDs []int64) (models.CommentsByMessage, error) {
	if len(messageIDs) == 0 {
		return make(models.CommentsByMessage), nil
	}

	grouped, err := s.commentRepo.ListByMessageIDs(ctx, dedupe(messageIDs))
	if err != nil {
		return nil, storeError("list comments", "Failed to load comments", err)
	}
	return grouped, nil
}

// CreateComment normalizes input, persists it and returns the stored row.
// Validation failures never reach the repository.
func (s *boardService) CreateComment(ctx context.Context, messageID int64, nickname, body string) (*models.Comment, error) {
	input, err := validation.NormalizeComment(messageID, nickname, body)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		MessageID: input.MessageID,
		Nickname:  input.Nickname,
		Body:      input.Body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, storeError("create comment", "Failed to create comment", err)
	}

	s.log.Debug().
		Int64("comment_id", comment.ID).
		Int64("message_id", comment.MessageID).
		Msg("Comment created")

	return comment, nil
}

// Counts returns the number of stored messages and comments
func (s *boardService) Counts(ctx context.Context) (*models.BoardCounts, error) {
	messages, err := s.messageRepo.Count(ctx)
	if err != nil {
		return nil, storeError("count messages", "Failed to count messages", err)
	}
	comments, err := s.commentRepo.Count(ctx)
	if err != nil {
		return nil, storeError("count comments", "Failed to count comments", err)
	}
	return &models.BoardCounts{Messages: messages, Comments: comments}, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
