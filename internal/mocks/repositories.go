package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/message-board/internal/models"
	"github.com/message-board/internal/repository"
)

// Verify interface compliance
var (
	_ repository.MessageRepository = (*MockMessageRepository)(nil)
	_ repository.CommentRepository = (*MockCommentRepository)(nil)
)

// MockMessageRepository is a mock implementation of MessageRepository
type MockMessageRepository struct {
	Messages  []*models.Message
	ListError error
	ListCalls int
}

func NewMockMessageRepository() *MockMessageRepository {
	return &MockMessageRepository{
		Messages: make([]*models.Message, 0),
	}
}

// Add stores a message, assigning the next id
func (m *MockMessageRepository) Add(nickname *string, body string, createdAt time.Time) *models.Message {
	msg := &models.Message{
		ID:        int64(len(m.Messages) + 1),
		Nickname:  nickname,
		Body:      body,
		CreatedAt: createdAt,
	}
	m.Messages = append(m.Messages, msg)
	return msg
}

func (m *MockMessageRepository) List(ctx context.Context) ([]*models.Message, error) {
	m.ListCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make([]*models.Message, len(m.Messages))
	copy(out, m.Messages)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockMessageRepository) Count(ctx context.Context) (int, error) {
	if m.ListError != nil {
		return 0, m.ListError
	}
	return len(m.Messages), nil
}

// MockCommentRepository is a mock implementation of CommentRepository.
// Now stands in for the store clock.
type MockCommentRepository struct {
	Comments    []*models.Comment
	InsertError error
	ListError   error
	CreateCalls int
	ListCalls   int
	Now         func() time.Time
}

func NewMockCommentRepository() *MockCommentRepository {
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	return &MockCommentRepository{
		Comments: make([]*models.Comment, 0),
		Now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.CreateCalls++
	if m.InsertError != nil {
		return m.InsertError
	}
	stored := *comment
	stored.ID = int64(len(m.Comments) + 1)
	stored.CreatedAt = m.Now()
	m.Comments = append(m.Comments, &stored)

	comment.ID = stored.ID
	comment.CreatedAt = stored.CreatedAt
	return nil
}

func (m *MockCommentRepository) ListByMessageIDs(ctx context.Context, messageIDs []int64) (models.CommentsByMessage, error) {
	m.ListCalls++
	if m.ListError != nil {
		return nil, m.ListError
	}

	wanted := make(map[int64]bool, len(messageIDs))
	for _, id := range messageIDs {
		wanted[id] = true
	}

	sorted := make([]*models.Comment, len(m.Comments))
	copy(sorted, m.Comments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	grouped := make(models.CommentsByMessage)
	for _, c := range sorted {
		if wanted[c.MessageID] {
			copied := *c
			grouped[c.MessageID] = append(grouped[c.MessageID], &copied)
		}
	}
	return grouped, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	if m.ListError != nil {
		return 0, m.ListError
	}
	return len(m.Comments), nil
}
