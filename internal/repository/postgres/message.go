package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/telesante/telesante-api/internal/model"
	"github.com/telesante/telesante-api/internal/repository"
)

func (r *messageRepository) Create(ctx context.Context, m *model.Message) error {
	query := `
		INSERT INTO messages (
			id, sender_id, receiver_id, content, created_at
		) VALUES ($1, $2, $3, $4, $5)
	`
	m.ID = uuid.New()
	m.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.SenderID,
		m.ReceiverID,
		m.Content,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *messageRepository) Get(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	query := `
		SELECT id, sender_id, receiver_id, content, read_at, created_at
		FROM messages
		WHERE id = $1
	`
	var m model.Message
	err := r.db.GetContext(ctx, &m, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &m, nil
}

func (r *messageRepository) ListConversation(ctx context.Context, a, b uuid.UUID) ([]*model.Message, error) {
	query := `
		SELECT id, sender_id, receiver_id, content, read_at, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC
	`
	var messages []*model.Message
	err := r.db.SelectContext(ctx, &messages, query, a, b)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversation: %w", err)
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE messages
		SET read_at = $1
		WHERE id = $2 AND read_at IS NULL
	`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return nil
}
