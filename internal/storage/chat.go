package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
)

type ChatStorage interface {
	CreateMessage(ctx context.Context, msg *models.SupportMessage) (*models.SupportMessage, error)
	ListMessagesByUserID(ctx context.Context, userID int64) ([]*models.SupportMessage, error)
	// ListThreads returns one entry per customer ordered by most recent message.
	ListThreads(ctx context.Context) ([]*models.SupportThread, error)
	MarkThreadRead(ctx context.Context, userID int64, sender string) error
}

type chatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) ChatStorage {
	return &chatRepository{db: db}
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *models.SupportMessage) (*models.SupportMessage, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO support_messages (user_id, sender, body, is_read, created_at)
		 VALUES ($1, $2, $3, false, NOW())
		 RETURNING id, created_at`,
		msg.UserID, msg.SenderRole, msg.Body,
	).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return msg, nil
}

func (r *chatRepository) ListMessagesByUserID(ctx context.Context, userID int64) ([]*models.SupportMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, sender, body, is_read, created_at
		 FROM support_messages WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.SupportMessage
	for rows.Next() {
		msg := &models.SupportMessage{}
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.SenderRole, &msg.Body, &msg.IsRead, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *chatRepository) ListThreads(ctx context.Context) ([]*models.SupportThread, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.user_id, u.email, u.full_name, m.body, m.created_at,
		        (SELECT COUNT(*) FROM support_messages
		         WHERE user_id = m.user_id AND sender = $1 AND is_read = false)
		 FROM support_messages m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.created_at = (SELECT MAX(created_at) FROM support_messages WHERE user_id = m.user_id)
		 ORDER BY m.created_at DESC`,
		models.SenderCustomer)
	if err != nil {
		return nil, fmt.Errorf("failed to query threads: %w", err)
	}
	defer rows.Close()

	var threads []*models.SupportThread
	for rows.Next() {
		t := &models.SupportThread{}
		if err := rows.Scan(&t.UserID, &t.UserEmail, &t.UserFullName, &t.LastMessage, &t.LastMessageAt, &t.UnreadCount); err != nil {
			return nil, err
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return threads, nil
}

func (r *chatRepository) MarkThreadRead(ctx context.Context, userID int64, sender string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE support_messages SET is_read = true WHERE user_id = $1 AND sender = $2 AND is_read = false",
		userID, sender)
	if err != nil {
		return fmt.Errorf("failed to mark thread read: %w", err)
	}
	return nil
}
