package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

// PointsPerCard is how many delivered orders fill one loyalty card.
const PointsPerCard = 10

// Loyalty card statuses.
const (
	CardCompleted = "completed"
	CardActive    = "active"
	CardLocked    = "locked"
)

// LoyaltyCard is one stamp card in the loyalty screen.
type LoyaltyCard struct {
	Number int    `json:"number"`
	Status string `json:"status"`
	Points int    `json:"points"`
}

// LoyaltyStatus is derived on every read from the delivered-order count.
// Nothing is persisted.
type LoyaltyStatus struct {
	DeliveredOrders int64         `json:"delivered_orders"`
	CompletedCards  int64         `json:"completed_cards"`
	ActivePoints    int64         `json:"active_points"`
	Cards           []LoyaltyCard `json:"cards"`
}

type LoyaltyService interface {
	Status(ctx context.Context, userID int64) (*LoyaltyStatus, error)
}

type loyaltyService struct {
	log    *slog.Logger
	orders storage.OrderStorage
}

func NewLoyaltyService(log *slog.Logger, orders storage.OrderStorage) LoyaltyService {
	return &loyaltyService{log: log, orders: orders}
}

func (s *loyaltyService) Status(ctx context.Context, userID int64) (*LoyaltyStatus, error) {
	const op = "service.LoyaltyService.Status"

	delivered, err := s.orders.CountDeliveredByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to count delivered orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return DeriveLoyalty(delivered), nil
}

// DeriveLoyalty computes the loyalty view for a delivered-order count. The
// card list always shows one card past the active one.
func DeriveLoyalty(delivered int64) *LoyaltyStatus {
	completed := delivered / PointsPerCard
	active := delivered % PointsPerCard

	cards := make([]LoyaltyCard, 0, completed+2)
	for i := int64(0); i < completed; i++ {
		cards = append(cards, LoyaltyCard{Number: int(i) + 1, Status: CardCompleted, Points: PointsPerCard})
	}
	cards = append(cards, LoyaltyCard{Number: int(completed) + 1, Status: CardActive, Points: int(active)})
	cards = append(cards, LoyaltyCard{Number: int(completed) + 2, Status: CardLocked})

	return &LoyaltyStatus{
		DeliveredOrders: delivered,
		CompletedCards:  completed,
		ActivePoints:    active,
		Cards:           cards,
	}
}
