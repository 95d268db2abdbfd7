package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

// PushSender is the part of the push client the services use directly.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]interface{}) error
	SendBatch(ctx context.Context, tokens []string, title, body string, data map[string]interface{}) error
	Chunk(tokens []string) [][]string
}

type FriendService interface {
	SendRequest(ctx context.Context, senderID int64, receiverEmail string) (*models.FriendRequest, error)
	Accept(ctx context.Context, userID int64, requestID string) error
	Reject(ctx context.Context, userID int64, requestID string) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	ListFriends(ctx context.Context, userID int64) ([]*models.Friend, error)
	ListIncoming(ctx context.Context, userID int64) ([]*models.FriendRequest, error)
	ListOutgoing(ctx context.Context, userID int64) ([]*models.FriendRequest, error)
}

type friendService struct {
	log      *slog.Logger
	db       *sql.DB
	friends  storage.FriendStorage
	userRepo storage.UserStorage
	pusher   PushSender
}

func NewFriendService(log *slog.Logger, db *sql.DB, friends storage.FriendStorage,
	userRepo storage.UserStorage, pusher PushSender) FriendService {
	return &friendService{
		log:      log,
		db:       db,
		friends:  friends,
		userRepo: userRepo,
		pusher:   pusher,
	}
}

// notify sends a push to one user, best-effort.
func (s *friendService) notify(logger *slog.Logger, userID int64, title, body string) {
	if s.pusher == nil {
		return
	}
	go func() {
		ctx := context.Background()
		user, err := s.userRepo.GetUserByID(ctx, userID)
		if err != nil || user.ExpoPushToken == "" {
			return
		}
		if err := s.pusher.Send(ctx, user.ExpoPushToken, title, body, nil); err != nil {
			logger.Warn("push notification failed", slog.Int64("userID", userID), slog.Any("error", err))
		}
	}()
}

func (s *friendService) SendRequest(ctx context.Context, senderID int64, receiverEmail string) (*models.FriendRequest, error) {
	const op = "service.FriendService.SendRequest"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("senderID", senderID),
		slog.String("receiver", receiverEmail),
	)

	receiver, err := s.userRepo.GetUserByEmail(ctx, receiverEmail)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		logger.Error("failed to get receiver", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if receiver.ID == senderID {
		return nil, fmt.Errorf("%s: %w", op, ErrSelfTransfer)
	}

	areFriends, err := s.friends.AreFriends(ctx, senderID, receiver.ID)
	if err != nil {
		logger.Error("failed to check friendship", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if areFriends {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyFriends)
	}

	pending, err := s.friends.HasPendingRequest(ctx, senderID, receiver.ID)
	if err != nil {
		logger.Error("failed to check pending requests", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if pending {
		return nil, fmt.Errorf("%s: %w", op, ErrRequestAlreadyPending)
	}

	req := &models.FriendRequest{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Status:     models.RequestPending,
	}
	if err := s.friends.CreateRequest(ctx, req); err != nil {
		logger.Error("failed to create request", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sender, err := s.userRepo.GetUserByID(ctx, senderID)
	if err == nil {
		s.notify(logger, receiver.ID, "New friend request", fmt.Sprintf("%s wants to be your friend", sender.FullName))
	}

	logger.Info("friend request sent", slog.String("requestID", req.ID))
	return req, nil
}

// Accept marks the request accepted and writes both friendship rows in one
// SQL transaction.
func (s *friendService) Accept(ctx context.Context, userID int64, requestID string) error {
	const op = "service.FriendService.Accept"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("userID", userID),
		slog.String("requestID", requestID),
	)

	req, err := s.friends.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, storage.ErrRequestNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrRequestNotFound)
		}
		logger.Error("failed to get request", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if req.ReceiverID != userID {
		return fmt.Errorf("%s: %w", op, ErrNotRequestReceiver)
	}
	if req.Status != models.RequestPending {
		return fmt.Errorf("%s: %w", op, ErrRequestResolved)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	// The pending guard in the UPDATE closes the race with a concurrent
	// accept or reject.
	if err := s.friends.UpdateRequestStatusTx(ctx, tx, requestID, models.RequestAccepted); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		if errors.Is(err, storage.ErrRequestNotFound) {
			return fmt.Errorf("%s: %w", op, ErrRequestResolved)
		}
		logger.Error("failed to update request", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.friends.AddFriendshipTx(ctx, tx, req.SenderID, req.ReceiverID); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to add friendship", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	receiver, err := s.userRepo.GetUserByID(ctx, userID)
	if err == nil {
		s.notify(logger, req.SenderID, "Friend request accepted", fmt.Sprintf("%s accepted your friend request", receiver.FullName))
	}

	logger.Info("friend request accepted")
	return nil
}

func (s *friendService) Reject(ctx context.Context, userID int64, requestID string) error {
	const op = "service.FriendService.Reject"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("userID", userID),
		slog.String("requestID", requestID),
	)

	req, err := s.friends.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, storage.ErrRequestNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrRequestNotFound)
		}
		logger.Error("failed to get request", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if req.ReceiverID != userID {
		return fmt.Errorf("%s: %w", op, ErrNotRequestReceiver)
	}
	if req.Status != models.RequestPending {
		return fmt.Errorf("%s: %w", op, ErrRequestResolved)
	}

	if err := s.friends.UpdateRequestStatus(ctx, requestID, models.RequestRejected); err != nil {
		if errors.Is(err, storage.ErrRequestNotFound) {
			return fmt.Errorf("%s: %w", op, ErrRequestResolved)
		}
		logger.Error("failed to update request", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("friend request rejected")
	return nil
}

func (s *friendService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	const op = "service.FriendService.RemoveFriend"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("userID", userID),
		slog.Int64("friendID", friendID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	areFriends, err := s.friends.AreFriendsTx(ctx, tx, userID, friendID)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to check friendship", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if !areFriends {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		return fmt.Errorf("%s: %w", op, ErrNotFriends)
	}

	if err := s.friends.RemoveFriendshipTx(ctx, tx, userID, friendID); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to remove friendship", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("friendship removed")
	return nil
}

func (s *friendService) ListFriends(ctx context.Context, userID int64) ([]*models.Friend, error) {
	const op = "service.FriendService.ListFriends"

	friends, err := s.friends.ListFriends(ctx, userID)
	if err != nil {
		s.log.Error("failed to list friends", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return friends, nil
}

func (s *friendService) ListIncoming(ctx context.Context, userID int64) ([]*models.FriendRequest, error) {
	const op = "service.FriendService.ListIncoming"

	requests, err := s.friends.ListIncomingRequests(ctx, userID)
	if err != nil {
		s.log.Error("failed to list incoming requests", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return requests, nil
}

func (s *friendService) ListOutgoing(ctx context.Context, userID int64) ([]*models.FriendRequest, error) {
	const op = "service.FriendService.ListOutgoing"

	requests, err := s.friends.ListOutgoingRequests(ctx, userID)
	if err != nil {
		s.log.Error("failed to list outgoing requests", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return requests, nil
}
