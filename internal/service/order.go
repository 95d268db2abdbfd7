package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/events"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

type OrderService interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Order, error)
	List(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, status string) error
}

type orderService struct {
	log      *slog.Logger
	orders   storage.OrderStorage
	userRepo storage.UserStorage
	pusher   PushSender
	producer events.Producer
	topic    string
}

func NewOrderService(log *slog.Logger, orders storage.OrderStorage, userRepo storage.UserStorage,
	pusher PushSender, producer events.Producer, topic string) OrderService {
	return &orderService{
		log:      log,
		orders:   orders,
		userRepo: userRepo,
		pusher:   pusher,
		producer: producer,
		topic:    topic,
	}
}

func (s *orderService) emit(order *models.Order) {
	if s.producer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.producer.Publish(ctx, s.topic, order.ID, events.OrderEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			Status:    order.Status,
			Total:     order.Total,
			CreatedAt: time.Now(),
		})
	}()
}

func (s *orderService) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	const op = "service.OrderService.Create"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("userID", order.UserID),
	)

	if len(order.Items) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyOrder)
	}
	order.Status = models.OrderPending

	created, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		logger.Error("failed to create order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.emit(created)
	logger.Info("order created", slog.Int64("orderID", created.ID), slog.Float64("total", created.Total))
	return created, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	const op = "service.OrderService.ListByUser"

	orders, err := s.orders.ListOrdersByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) List(ctx context.Context) ([]*models.Order, error) {
	const op = "service.OrderService.List"

	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// UpdateStatus is admin-driven and last-write-wins. The order owner gets a
// push notification on every change.
func (s *orderService) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	const op = "service.OrderService.UpdateStatus"
	logger := s.log.With(
		slog.String("op", op),
		slog.Int64("orderID", orderID),
		slog.String("status", status),
	)

	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%s: %w", op, ErrInvalidStatus)
	}

	order, err := s.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrOrderNotFound)
		}
		logger.Error("failed to get order", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.orders.UpdateOrderStatus(ctx, orderID, status); err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrOrderNotFound)
		}
		logger.Error("failed to update status", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	order.Status = status
	s.emit(order)
	s.notifyOwner(logger, order)

	logger.Info("order status updated")
	return nil
}

func (s *orderService) notifyOwner(logger *slog.Logger, order *models.Order) {
	if s.pusher == nil {
		return
	}
	go func() {
		ctx := context.Background()
		user, err := s.userRepo.GetUserByID(ctx, order.UserID)
		if err != nil || user.ExpoPushToken == "" {
			return
		}
		body := fmt.Sprintf("Your order #%d is now %s", order.ID, order.Status)
		if err := s.pusher.Send(ctx, user.ExpoPushToken, "Order update", body,
			map[string]interface{}{"order_id": order.ID, "status": order.Status}); err != nil {
			logger.Warn("push notification failed", slog.Any("error", err))
		}
	}()
}
