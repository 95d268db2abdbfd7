package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
)

var ErrOrderNotFound = errors.New("order not found")

type OrderStorage interface {
	// CreateOrder inserts the order and its item snapshots in one transaction.
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) error
	CountDeliveredByUserID(ctx context.Context, userID int64) (int64, error)
}

type orderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, total, payment_method, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		order.UserID, order.Total, order.PaymentMethod, order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return nil, fmt.Errorf("failed to create order: %v, rollback error: %w", err, rbErr)
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		err = tx.QueryRowContext(ctx,
			`INSERT INTO order_items (order_id, product_id, name, price, quantity, size, color)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`,
			order.ID, item.ProductID, item.Name, item.Price, item.Quantity, item.Size, item.Color,
		).Scan(&item.ID)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return nil, fmt.Errorf("failed to create order item: %v, rollback error: %w", err, rbErr)
			}
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return order, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, total, payment_method, status, created_at, updated_at
		 FROM orders WHERE id = $1`, id,
	).Scan(&order.ID, &order.UserID, &order.Total, &order.PaymentMethod,
		&order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListOrdersByUserID(ctx context.Context, userID int64) ([]*models.Order, error) {
	return r.queryOrders(ctx,
		`SELECT id, user_id, total, payment_method, status, created_at, updated_at
		 FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return r.queryOrders(ctx,
		`SELECT id, user_id, total, payment_method, status, created_at, updated_at
		 FROM orders ORDER BY created_at DESC`)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.UserID, &order.Total, &order.PaymentMethod,
			&order.Status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, order := range orders {
		if err := r.loadItems(ctx, order); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *orderRepository) loadItems(ctx context.Context, order *models.Order) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, name, price, quantity, COALESCE(size, ''), COALESCE(color, '')
		 FROM order_items WHERE order_id = $1 ORDER BY id`, order.ID)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Name, &item.Price,
			&item.Quantity, &item.Size, &item.Color); err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func (r *orderRepository) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) CountDeliveredByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE user_id = $1 AND status = $2",
		userID, models.OrderDelivered,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count delivered orders: %w", err)
	}
	return count, nil
}
