package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/climblink/backend/internal/domain"
	"github.com/climblink/backend/internal/repository"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (sender_id, recipient_id, content, is_read)
		VALUES ($1, $2, $3, false)
		RETURNING id, is_read, created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		message.SenderID, message.RecipientID, message.Content,
	).Scan(&message.ID, &message.IsRead, &message.CreatedAt)
}

func (r *messageRepository) Conversation(ctx context.Context, id1, id2 int) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT * FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY created_at ASC
	`
	err := r.db.SelectContext(ctx, &messages, query, id1, id2)
	return messages, err
}

func (r *messageRepository) ListForUser(ctx context.Context, userID int) ([]*domain.Message, error) {
	var messages []*domain.Message
	query := `
		SELECT * FROM messages
		WHERE sender_id = $1 OR recipient_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &messages, query, userID)
	return messages, err
}

func (r *messageRepository) MarkRead(ctx context.Context, senderID, recipientID int) (int, error) {
	query := `
		UPDATE messages
		SET is_read = true
		WHERE sender_id = $1 AND recipient_id = $2 AND is_read = false
	`
	result, err := r.db.ExecContext(ctx, query, senderID, recipientID)
	if err != nil {
		return 0, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rows), nil
}
