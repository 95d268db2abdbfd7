package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
)

var ErrReelNotFound = errors.New("reel not found")

type ReelStorage interface {
	CreateReel(ctx context.Context, reel *models.Reel) (*models.Reel, error)
	GetReelByID(ctx context.Context, id string) (*models.Reel, error)
	// ListActiveReels returns reels that have not reached expires_at yet.
	ListActiveReels(ctx context.Context) ([]*models.Reel, error)
	DeleteReel(ctx context.Context, id string) error
	// DeleteExpiredReels removes rows past expires_at, returning how many were removed.
	DeleteExpiredReels(ctx context.Context) (int64, error)
}

type reelRepository struct {
	db *sql.DB
}

func NewReelRepository(db *sql.DB) ReelStorage {
	return &reelRepository{db: db}
}

func (r *reelRepository) CreateReel(ctx context.Context, reel *models.Reel) (*models.Reel, error) {
	reel.ID = uuid.New().String()
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO reels (id, user_id, media_url, caption, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, NOW(), NOW() + $5::interval)
		 RETURNING created_at, expires_at`,
		reel.ID, reel.UserID, reel.MediaURL, reel.Caption, models.ReelLifetime.String(),
	).Scan(&reel.CreatedAt, &reel.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create reel: %w", err)
	}
	return reel, nil
}

func (r *reelRepository) GetReelByID(ctx context.Context, id string) (*models.Reel, error) {
	reel := &models.Reel{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, media_url, COALESCE(caption, ''), created_at, expires_at
		 FROM reels WHERE id = $1`, id,
	).Scan(&reel.ID, &reel.UserID, &reel.MediaURL, &reel.Caption, &reel.CreatedAt, &reel.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReelNotFound
		}
		return nil, fmt.Errorf("failed to get reel: %w", err)
	}
	return reel, nil
}

func (r *reelRepository) ListActiveReels(ctx context.Context) ([]*models.Reel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, media_url, COALESCE(caption, ''), created_at, expires_at
		 FROM reels WHERE expires_at > NOW() ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reels: %w", err)
	}
	defer rows.Close()

	var reels []*models.Reel
	for rows.Next() {
		reel := &models.Reel{}
		if err := rows.Scan(&reel.ID, &reel.UserID, &reel.MediaURL, &reel.Caption,
			&reel.CreatedAt, &reel.ExpiresAt); err != nil {
			return nil, err
		}
		reels = append(reels, reel)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reels, nil
}

func (r *reelRepository) DeleteReel(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reels WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReelNotFound
	}
	return nil
}

func (r *reelRepository) DeleteExpiredReels(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reels WHERE expires_at <= NOW()")
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired reels: %w", err)
	}
	return res.RowsAffected()
}
