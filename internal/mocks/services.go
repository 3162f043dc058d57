package mocks

import (
	"context"
	"time"

	"github.com/message-board/internal/models"
	"github.com/message-board/internal/service"
	"github.com/message-board/internal/validation"
)

// MockBoardService is a mock implementation of BoardService
type MockBoardService struct {
	Messages       []*models.Message
	Comments       models.CommentsByMessage
	ListError      error
	CommentsError  error
	CreateError    error
	CreateFunc     func(ctx context.Context, messageID int64, nickname, body string) (*models.Comment, error)
	CreatedInputs  []CreateCall
	CommentQueries [][]int64
	Counted        *models.BoardCounts
}

// CreateCall records the arguments of one CreateComment call
type CreateCall struct {
	MessageID int64
	Nickname  string
	Body      string
}

// Verify interface compliance
var _ service.BoardService = (*MockBoardService)(nil)

func NewMockBoardService() *MockBoardService {
	return &MockBoardService{
		Messages: make([]*models.Message, 0),
		Comments: make(models.CommentsByMessage),
		Counted:  &models.BoardCounts{},
	}
}

func (m *MockBoardService) ListMessages(ctx context.Context) ([]*models.Message, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.Messages, nil
}

func (m *MockBoardService) ListCommentsFor(ctx context.Context, messageIDs []int64) (models.CommentsByMessage, error) {
	m.CommentQueries = append(m.CommentQueries, messageIDs)
	if m.CommentsError != nil {
		return nil, m.CommentsError
	}
	out := make(models.CommentsByMessage)
	for _, id := range messageIDs {
		if group, ok := m.Comments[id]; ok {
			out[id] = group
		}
	}
	return out, nil
}

// CreateComment applies the real normalization rules so handler tests see
// the same validation errors as production.
func (m *MockBoardService) CreateComment(ctx context.Context, messageID int64, nickname, body string) (*models.Comment, error) {
	m.CreatedInputs = append(m.CreatedInputs, CreateCall{MessageID: messageID, Nickname: nickname, Body: body})
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, messageID, nickname, body)
	}

	input, err := validation.NormalizeComment(messageID, nickname, body)
	if err != nil {
		return nil, err
	}
	if m.CreateError != nil {
		return nil, m.CreateError
	}

	comment := &models.Comment{
		ID:        int64(len(m.CreatedInputs)),
		MessageID: input.MessageID,
		Nickname:  input.Nickname,
		Body:      input.Body,
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	m.Comments[messageID] = append(m.Comments[messageID], comment)
	return comment, nil
}

func (m *MockBoardService) Counts(ctx context.Context) (*models.BoardCounts, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.Counted, nil
}
