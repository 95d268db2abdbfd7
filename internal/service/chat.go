package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

type ChatService interface {
	SendCustomerMessage(ctx context.Context, userID int64, body string) (*models.SupportMessage, error)
	SendSupportMessage(ctx context.Context, userID int64, body string) (*models.SupportMessage, error)
	Thread(ctx context.Context, userID int64, markReadFor string) ([]*models.SupportMessage, error)
	ListThreads(ctx context.Context) ([]*models.SupportThread, error)
}

type chatService struct {
	log      *slog.Logger
	repo     storage.ChatStorage
	userRepo storage.UserStorage
	pusher   PushSender
}

func NewChatService(log *slog.Logger, repo storage.ChatStorage, userRepo storage.UserStorage, pusher PushSender) ChatService {
	return &chatService{log: log, repo: repo, userRepo: userRepo, pusher: pusher}
}

func (s *chatService) SendCustomerMessage(ctx context.Context, userID int64, body string) (*models.SupportMessage, error) {
	const op = "service.ChatService.SendCustomerMessage"

	msg, err := s.repo.CreateMessage(ctx, &models.SupportMessage{
		UserID:     userID,
		SenderRole: models.SenderCustomer,
		Body:       body,
	})
	if err != nil {
		s.log.Error("failed to create message", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return msg, nil
}

// SendSupportMessage appends an admin reply and pushes it to the customer.
func (s *chatService) SendSupportMessage(ctx context.Context, userID int64, body string) (*models.SupportMessage, error) {
	const op = "service.ChatService.SendSupportMessage"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID))

	msg, err := s.repo.CreateMessage(ctx, &models.SupportMessage{
		UserID:     userID,
		SenderRole: models.SenderSupport,
		Body:       body,
	})
	if err != nil {
		logger.Error("failed to create message", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.pusher != nil {
		go func() {
			ctx := context.Background()
			user, err := s.userRepo.GetUserByID(ctx, userID)
			if err != nil || user.ExpoPushToken == "" {
				return
			}
			if err := s.pusher.Send(ctx, user.ExpoPushToken, "Support", body, nil); err != nil {
				logger.Warn("push notification failed", slog.Any("error", err))
			}
		}()
	}
	return msg, nil
}

// Thread returns the full message history and marks the other side's messages
// as read for the viewer.
func (s *chatService) Thread(ctx context.Context, userID int64, markReadFor string) ([]*models.SupportMessage, error) {
	const op = "service.ChatService.Thread"

	if markReadFor != "" {
		if err := s.repo.MarkThreadRead(ctx, userID, markReadFor); err != nil {
			s.log.Warn("failed to mark thread read", slog.String("op", op), slog.Any("error", err))
		}
	}

	messages, err := s.repo.ListMessagesByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to list messages", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return messages, nil
}

func (s *chatService) ListThreads(ctx context.Context) ([]*models.SupportThread, error) {
	const op = "service.ChatService.ListThreads"

	threads, err := s.repo.ListThreads(ctx)
	if err != nil {
		s.log.Error("failed to list threads", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return threads, nil
}
