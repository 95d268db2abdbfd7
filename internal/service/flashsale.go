package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/cache"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

const flashSaleCacheKey = "flashsale:config"

// FlashSaleView is the public read: the sale config plus the discounted
// products resolved from the catalog.
type FlashSaleView struct {
	EndTime  time.Time         `json:"end_time"`
	Products []*models.Product `json:"products"`
}

type FlashSaleService interface {
	Current(ctx context.Context) (*FlashSaleView, error)
	Set(ctx context.Context, endTime time.Time, productIDs []int64) error
	Clear(ctx context.Context) error
}

type flashSaleService struct {
	log      *slog.Logger
	repo     storage.FlashSaleStorage
	catalog  storage.CatalogStorage
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewFlashSaleService(log *slog.Logger, repo storage.FlashSaleStorage,
	catalog storage.CatalogStorage, c cache.Cache, cacheTTL time.Duration) FlashSaleService {
	return &flashSaleService{
		log:      log,
		repo:     repo,
		catalog:  catalog,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// Current is cache-first with DB fallback and re-prime. An expired countdown
// reads as no sale.
func (s *flashSaleService) Current(ctx context.Context) (*FlashSaleView, error) {
	const op = "service.FlashSaleService.Current"

	sale, err := s.load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrFlashSaleNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrFlashSaleInactive)
		}
		s.log.Error("failed to load flash sale", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !sale.Active(time.Now()) {
		return nil, fmt.Errorf("%s: %w", op, ErrFlashSaleInactive)
	}

	products, err := s.catalog.ListProductsByIDs(ctx, sale.ProductIDs)
	if err != nil {
		s.log.Error("failed to resolve sale products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &FlashSaleView{EndTime: sale.EndTime, Products: products}, nil
}

func (s *flashSaleService) load(ctx context.Context) (*models.FlashSale, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, flashSaleCacheKey); err == nil {
			sale := &models.FlashSale{}
			if err := json.Unmarshal([]byte(raw), sale); err == nil {
				return sale, nil
			}
		} else if !errors.Is(err, cache.ErrKeyNotFound) {
			s.log.Warn("flash sale cache read failed", slog.Any("error", err))
		}
	}

	sale, err := s.repo.GetFlashSale(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(sale); err == nil {
			if err := s.cache.Set(ctx, flashSaleCacheKey, raw, s.cacheTTL); err != nil {
				s.log.Warn("flash sale cache write failed", slog.Any("error", err))
			}
		}
	}
	return sale, nil
}

func (s *flashSaleService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, flashSaleCacheKey); err != nil {
		s.log.Warn("flash sale cache invalidation failed", slog.Any("error", err))
	}
}

func (s *flashSaleService) Set(ctx context.Context, endTime time.Time, productIDs []int64) error {
	const op = "service.FlashSaleService.Set"
	logger := s.log.With(slog.String("op", op))

	if err := s.repo.SetFlashSale(ctx, &models.FlashSale{EndTime: endTime, ProductIDs: productIDs}); err != nil {
		logger.Error("failed to set flash sale", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx)

	logger.Info("flash sale updated", slog.Time("endTime", endTime), slog.Int("products", len(productIDs)))
	return nil
}

func (s *flashSaleService) Clear(ctx context.Context) error {
	const op = "service.FlashSaleService.Clear"

	if err := s.repo.ClearFlashSale(ctx); err != nil {
		s.log.Error("failed to clear flash sale", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx)
	return nil
}
