package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

// CouponResult is what Apply returns to the checkout screen.
type CouponResult struct {
	Code         string  `json:"code"`
	Type         string  `json:"type"`
	Discount     float64 `json:"discount"`
	FreeDelivery bool    `json:"free_delivery"`
	NewTotal     float64 `json:"new_total"`
}

type CouponService interface {
	Apply(ctx context.Context, code string, total float64) (*CouponResult, error)
	Create(ctx context.Context, c *models.Coupon) (*models.Coupon, error)
	List(ctx context.Context) ([]*models.Coupon, error)
	SetActive(ctx context.Context, code string, active bool) error
	Delete(ctx context.Context, code string) error
}

type couponService struct {
	log  *slog.Logger
	repo storage.CouponStorage
}

func NewCouponService(log *slog.Logger, repo storage.CouponStorage) CouponService {
	return &couponService{log: log, repo: repo}
}

func (s *couponService) Apply(ctx context.Context, code string, total float64) (*CouponResult, error) {
	const op = "service.CouponService.Apply"
	logger := s.log.With(slog.String("op", op), slog.String("code", code))

	coupon, err := s.repo.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, storage.ErrCouponNotFound) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrCouponNotFound)
		}
		logger.Error("failed to get coupon", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !coupon.IsActive {
		return nil, fmt.Errorf("%s: %w", op, ErrCouponInactive)
	}
	if coupon.Expired(time.Now()) {
		return nil, fmt.Errorf("%s: %w", op, ErrCouponExpired)
	}

	result := &CouponResult{Code: coupon.Code, Type: coupon.Type, NewTotal: total}
	switch coupon.Type {
	case models.CouponPercentage:
		result.Discount = total * coupon.Value / 100
	case models.CouponFixed:
		result.Discount = coupon.Value
		if result.Discount > total {
			result.Discount = total
		}
	case models.CouponFreeDelivery:
		result.FreeDelivery = true
	}
	result.NewTotal = total - result.Discount

	logger.Info("coupon applied", slog.Float64("discount", result.Discount))
	return result, nil
}

func (s *couponService) Create(ctx context.Context, c *models.Coupon) (*models.Coupon, error) {
	const op = "service.CouponService.Create"

	coupon, err := s.repo.CreateCoupon(ctx, c)
	if err != nil {
		s.log.Error("failed to create coupon", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return coupon, nil
}

func (s *couponService) List(ctx context.Context) ([]*models.Coupon, error) {
	const op = "service.CouponService.List"

	coupons, err := s.repo.ListCoupons(ctx)
	if err != nil {
		s.log.Error("failed to list coupons", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return coupons, nil
}

func (s *couponService) SetActive(ctx context.Context, code string, active bool) error {
	const op = "service.CouponService.SetActive"

	if err := s.repo.SetCouponActive(ctx, code, active); err != nil {
		if errors.Is(err, storage.ErrCouponNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrCouponNotFound)
		}
		s.log.Error("failed to toggle coupon", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *couponService) Delete(ctx context.Context, code string) error {
	const op = "service.CouponService.Delete"

	if err := s.repo.DeleteCoupon(ctx, code); err != nil {
		if errors.Is(err, storage.ErrCouponNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrCouponNotFound)
		}
		s.log.Error("failed to delete coupon", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
