package repository

import (
	"context"
	"database/sql"

	"github.com/message-board/internal/database"
	"github.com/message-board/internal/models"
)

// messageRepo is the concrete implementation of MessageRepository
type messageRepo struct {
	db *database.DB
}

// NewMessageRepo creates a new message repository
func NewMessageRepo(db *database.DB) MessageRepository {
	return &messageRepo{db: db}
}

// List returns every message, newest first
func (r *messageRepo) List(ctx context.Context) ([]*models.Message, error) {
	query := `SELECT id, nickname, body, created_at FROM messages ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]*models.Message, 0)
	for rows.Next() {
		var (
			message  models.Message
			nickname sql.NullString
		)
		if err := rows.Scan(&message.ID, &nickname, &message.Body, &message.CreatedAt); err != nil {
			return nil, err
		}
		if nickname.Valid {
			message.Nickname = &nickname.String
		}
		messages = append(messages, &message)
	}

	return messages, rows.Err()
}

// Count returns the total number of messages
func (r *messageRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&count)
	return count, err
}
