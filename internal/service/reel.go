package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

type ReelService interface {
	Create(ctx context.Context, userID int64, mediaURL, caption string) (*models.Reel, error)
	ListActive(ctx context.Context) ([]*models.Reel, error)
	Delete(ctx context.Context, userID int64, isAdmin bool, reelID string) error
	// PurgeExpired removes reels past their lifetime. Called periodically.
	PurgeExpired(ctx context.Context) (int64, error)
}

type reelService struct {
	log  *slog.Logger
	repo storage.ReelStorage
}

func NewReelService(log *slog.Logger, repo storage.ReelStorage) ReelService {
	return &reelService{log: log, repo: repo}
}

func (s *reelService) Create(ctx context.Context, userID int64, mediaURL, caption string) (*models.Reel, error) {
	const op = "service.ReelService.Create"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	reel, err := s.repo.CreateReel(ctx, &models.Reel{
		UserID:   userID,
		MediaURL: mediaURL,
		Caption:  caption,
	})
	if err != nil {
		logger.Error("failed to create reel", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("reel created", slog.String("reelID", reel.ID))
	return reel, nil
}

func (s *reelService) ListActive(ctx context.Context) ([]*models.Reel, error) {
	const op = "service.ReelService.ListActive"

	reels, err := s.repo.ListActiveReels(ctx)
	if err != nil {
		s.log.Error("failed to list reels", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return reels, nil
}

func (s *reelService) Delete(ctx context.Context, userID int64, isAdmin bool, reelID string) error {
	const op = "service.ReelService.Delete"
	logger := s.log.With(slog.String("op", op), slog.String("reelID", reelID))

	reel, err := s.repo.GetReelByID(ctx, reelID)
	if err != nil {
		if errors.Is(err, storage.ErrReelNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrReelNotFound)
		}
		logger.Error("failed to get reel", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if reel.UserID != userID && !isAdmin {
		return fmt.Errorf("%s: %w", op, ErrNotReelOwner)
	}

	if err := s.repo.DeleteReel(ctx, reelID); err != nil {
		if errors.Is(err, storage.ErrReelNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrReelNotFound)
		}
		logger.Error("failed to delete reel", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("reel deleted")
	return nil
}

func (s *reelService) PurgeExpired(ctx context.Context) (int64, error) {
	const op = "service.ReelService.PurgeExpired"

	n, err := s.repo.DeleteExpiredReels(ctx)
	if err != nil {
		s.log.Error("failed to purge reels", slog.String("op", op), slog.Any("error", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if n > 0 {
		s.log.Info("expired reels purged", slog.String("op", op), slog.Int64("count", n))
	}
	return n, nil
}
