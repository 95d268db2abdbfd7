package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/metrics"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/worker"
)

type BroadcastService interface {
	// Broadcast queues a push notification to every registered device and
	// returns the number of batches submitted.
	Broadcast(ctx context.Context, title, body string) (int, error)
}

type broadcastService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
	pusher   PushSender
	pool     *worker.Pool
}

func NewBroadcastService(log *slog.Logger, userRepo storage.UserStorage, pusher PushSender, pool *worker.Pool) BroadcastService {
	return &broadcastService{
		log:      log,
		userRepo: userRepo,
		pusher:   pusher,
		pool:     pool,
	}
}

func (s *broadcastService) Broadcast(ctx context.Context, title, body string) (int, error) {
	const op = "service.BroadcastService.Broadcast"
	logger := s.log.With(slog.String("op", op), slog.String("title", title))

	tokens, err := s.userRepo.ListPushTokens(ctx)
	if err != nil {
		logger.Error("failed to list push tokens", slog.Any("error", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	// The query is DISTINCT, but dedupe again: shared devices happen.
	seen := make(map[string]struct{}, len(tokens))
	unique := tokens[:0]
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		unique = append(unique, token)
	}

	batches := s.pusher.Chunk(unique)
	for _, batch := range batches {
		batch := batch
		s.pool.Submit(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.pusher.SendBatch(ctx, batch, title, body, nil); err != nil {
				logger.Warn("push batch failed", slog.Int("size", len(batch)), slog.Any("error", err))
				metrics.PushBatchesTotal.WithLabelValues("failed").Inc()
				return
			}
			metrics.PushBatchesTotal.WithLabelValues("sent").Inc()
		})
	}

	logger.Info("broadcast queued", slog.Int("tokens", len(unique)), slog.Int("batches", len(batches)))
	return len(batches), nil
}
