package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

// Profile aggregates everything the account screen shows in one response.
type Profile struct {
	UserID         int64                       `json:"user_id"`
	Email          string                      `json:"email"`
	FullName       string                      `json:"full_name"`
	CoinBalance    int64                       `json:"coin_balance"`
	DiamondBalance int64                       `json:"diamond_balance"`
	Loyalty        *LoyaltyStatus              `json:"loyalty"`
	Transactions   []*models.WalletTransaction `json:"transactions"`
}

type ProfileService interface {
	Profile(ctx context.Context, userID int64) (*Profile, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
}

type profileService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
	txRepo   storage.WalletTransactionStorage
	loyalty  LoyaltyService
}

func NewProfileService(log *slog.Logger, userRepo storage.UserStorage,
	txRepo storage.WalletTransactionStorage, loyalty LoyaltyService) ProfileService {
	return &profileService{
		log:      log,
		userRepo: userRepo,
		txRepo:   txRepo,
		loyalty:  loyalty,
	}
}

func (s *profileService) Profile(ctx context.Context, userID int64) (*Profile, error) {
	const op = "service.ProfileService.Profile"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	transactions, err := s.txRepo.GetTransactionsByUserID(ctx, userID, 0)
	if err != nil {
		logger.Error("failed to load transactions", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	loyalty, err := s.loyalty.Status(ctx, userID)
	if err != nil {
		logger.Error("failed to derive loyalty", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Profile{
		UserID:         user.ID,
		Email:          user.Email,
		FullName:       user.FullName,
		CoinBalance:    user.CoinBalance,
		DiamondBalance: user.DiamondBalance,
		Loyalty:        loyalty,
		Transactions:   transactions,
	}, nil
}

func (s *profileService) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "service.ProfileService.ListUsers"

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		s.log.Error("failed to list users", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}
