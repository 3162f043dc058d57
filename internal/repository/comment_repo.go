package repository

import (
	"context"

	"github.com/lib/pq"
	"github.com/message-board/internal/database"
	"github.com/message-board/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a comment and fills in the id and created_at the store
// generated. The caller's clock is never used for created_at.
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (message_id, nickname, body, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		comment.MessageID, comment.Nickname, comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt)
}

// ListByMessageIDs fetches the comments of all given messages in one query
// and groups them by message. An empty id set never reaches the database.
func (r *commentRepo) ListByMessageIDs(ctx context.Context, messageIDs []int64) (models.CommentsByMessage, error) {
	grouped := make(models.CommentsByMessage)
	if len(messageIDs) == 0 {
		return grouped, nil
	}

	query := `
		SELECT id, message_id, nickname, body, created_at
		FROM comments
		WHERE message_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(messageIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.MessageID, &comment.Nickname, &comment.Body, &comment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		grouped[comment.MessageID] = append(grouped[comment.MessageID], &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return grouped, nil
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
