package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
)

var ErrFlashSaleNotFound = errors.New("flash sale not configured")

// FlashSaleStorage holds a single configuration row. Setting it replaces the
// previous configuration.
type FlashSaleStorage interface {
	GetFlashSale(ctx context.Context) (*models.FlashSale, error)
	SetFlashSale(ctx context.Context, sale *models.FlashSale) error
	ClearFlashSale(ctx context.Context) error
}

type flashSaleRepository struct {
	db *sql.DB
}

func NewFlashSaleRepository(db *sql.DB) FlashSaleStorage {
	return &flashSaleRepository{db: db}
}

func (r *flashSaleRepository) GetFlashSale(ctx context.Context) (*models.FlashSale, error) {
	sale := &models.FlashSale{}
	err := r.db.QueryRowContext(ctx,
		"SELECT end_time, product_ids, updated_at FROM flash_sale WHERE id = 1",
	).Scan(&sale.EndTime, pq.Array(&sale.ProductIDs), &sale.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlashSaleNotFound
		}
		return nil, fmt.Errorf("failed to get flash sale: %w", err)
	}
	return sale, nil
}

func (r *flashSaleRepository) SetFlashSale(ctx context.Context, sale *models.FlashSale) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO flash_sale (id, end_time, product_ids, updated_at)
		 VALUES (1, $1, $2, NOW())
		 ON CONFLICT (id) DO UPDATE SET end_time = $1, product_ids = $2, updated_at = NOW()`,
		sale.EndTime, pq.Array(sale.ProductIDs))
	if err != nil {
		return fmt.Errorf("failed to set flash sale: %w", err)
	}
	return nil
}

func (r *flashSaleRepository) ClearFlashSale(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM flash_sale WHERE id = 1")
	return err
}
