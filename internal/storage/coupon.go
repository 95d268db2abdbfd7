package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
)

var ErrCouponNotFound = errors.New("coupon not found")

type CouponStorage interface {
	CreateCoupon(ctx context.Context, c *models.Coupon) (*models.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error)
	ListCoupons(ctx context.Context) ([]*models.Coupon, error)
	SetCouponActive(ctx context.Context, code string, active bool) error
	DeleteCoupon(ctx context.Context, code string) error
}

type couponRepository struct {
	db *sql.DB
}

func NewCouponRepository(db *sql.DB) CouponStorage {
	return &couponRepository{db: db}
}

func (r *couponRepository) CreateCoupon(ctx context.Context, c *models.Coupon) (*models.Coupon, error) {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO coupons (code, type, value, is_active, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 RETURNING id`,
		c.Code, c.Type, c.Value, c.IsActive, c.ExpiresAt,
	).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return c, nil
}

func (r *couponRepository) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	c := &models.Coupon{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, code, type, value, is_active, expires_at
		 FROM coupons WHERE code = $1`,
		strings.ToUpper(strings.TrimSpace(code)),
	).Scan(&c.ID, &c.Code, &c.Type, &c.Value, &c.IsActive, &c.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	return c, nil
}

func (r *couponRepository) ListCoupons(ctx context.Context) ([]*models.Coupon, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, code, type, value, is_active, expires_at FROM coupons ORDER BY code")
	if err != nil {
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	var coupons []*models.Coupon
	for rows.Next() {
		c := &models.Coupon{}
		if err := rows.Scan(&c.ID, &c.Code, &c.Type, &c.Value, &c.IsActive, &c.ExpiresAt); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *couponRepository) SetCouponActive(ctx context.Context, code string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE coupons SET is_active = $1 WHERE code = $2",
		active, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponNotFound
	}
	return nil
}

func (r *couponRepository) DeleteCoupon(ctx context.Context, code string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM coupons WHERE code = $1", strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponNotFound
	}
	return nil
}
