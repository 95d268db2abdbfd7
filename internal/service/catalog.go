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

const productListCacheKey = "catalog:products"

type CatalogService interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListBrands(ctx context.Context) ([]*models.Brand, error)
	CreateBrand(ctx context.Context, b *models.Brand) (*models.Brand, error)
	DeleteBrand(ctx context.Context, id int64) error

	ListBanners(ctx context.Context, activeOnly bool) ([]*models.Banner, error)
	CreateBanner(ctx context.Context, b *models.Banner) (*models.Banner, error)
	DeleteBanner(ctx context.Context, id int64) error
}

type catalogService struct {
	log      *slog.Logger
	repo     storage.CatalogStorage
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewCatalogService(log *slog.Logger, repo storage.CatalogStorage, c cache.Cache, cacheTTL time.Duration) CatalogService {
	return &catalogService{log: log, repo: repo, cache: c, cacheTTL: cacheTTL}
}

// ListProducts is cache-first: the storefront hits this on every home screen
// load. Cache failures fall through to the database.
func (s *catalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	const op = "service.CatalogService.ListProducts"

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, productListCacheKey); err == nil {
			var products []*models.Product
			if err := json.Unmarshal([]byte(raw), &products); err == nil {
				return products, nil
			}
		} else if !errors.Is(err, cache.ErrKeyNotFound) {
			s.log.Warn("product cache read failed", slog.String("op", op), slog.Any("error", err))
		}
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(products); err == nil {
			if err := s.cache.Set(ctx, productListCacheKey, raw, s.cacheTTL); err != nil {
				s.log.Warn("product cache write failed", slog.String("op", op), slog.Any("error", err))
			}
		}
	}
	return products, nil
}

func (s *catalogService) invalidateProducts(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, productListCacheKey); err != nil {
		s.log.Warn("product cache invalidation failed", slog.Any("error", err))
	}
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	const op = "service.CatalogService.GetProduct"

	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		s.log.Error("failed to get product", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	const op = "service.CatalogService.CreateProduct"

	if p.Status == "" {
		p.Status = models.ProductActive
	}
	product, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		s.log.Error("failed to create product", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateProducts(ctx)
	return product, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, p *models.Product) error {
	const op = "service.CatalogService.UpdateProduct"

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		s.log.Error("failed to update product", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateProducts(ctx)
	return nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	const op = "service.CatalogService.DeleteProduct"

	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
		}
		s.log.Error("failed to delete product", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateProducts(ctx)
	return nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "service.CatalogService.ListCategories"

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.log.Error("failed to list categories", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return categories, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	const op = "service.CatalogService.CreateCategory"

	category, err := s.repo.CreateCategory(ctx, c)
	if err != nil {
		s.log.Error("failed to create category", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id int64) error {
	const op = "service.CatalogService.DeleteCategory"

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		s.log.Error("failed to delete category", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *catalogService) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	const op = "service.CatalogService.ListBrands"

	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		s.log.Error("failed to list brands", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return brands, nil
}

func (s *catalogService) CreateBrand(ctx context.Context, b *models.Brand) (*models.Brand, error) {
	const op = "service.CatalogService.CreateBrand"

	brand, err := s.repo.CreateBrand(ctx, b)
	if err != nil {
		s.log.Error("failed to create brand", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return brand, nil
}

func (s *catalogService) DeleteBrand(ctx context.Context, id int64) error {
	const op = "service.CatalogService.DeleteBrand"

	if err := s.repo.DeleteBrand(ctx, id); err != nil {
		s.log.Error("failed to delete brand", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *catalogService) ListBanners(ctx context.Context, activeOnly bool) ([]*models.Banner, error) {
	const op = "service.CatalogService.ListBanners"

	banners, err := s.repo.ListBanners(ctx, activeOnly)
	if err != nil {
		s.log.Error("failed to list banners", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return banners, nil
}

func (s *catalogService) CreateBanner(ctx context.Context, b *models.Banner) (*models.Banner, error) {
	const op = "service.CatalogService.CreateBanner"

	banner, err := s.repo.CreateBanner(ctx, b)
	if err != nil {
		s.log.Error("failed to create banner", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return banner, nil
}

func (s *catalogService) DeleteBanner(ctx context.Context, id int64) error {
	const op = "service.CatalogService.DeleteBanner"

	if err := s.repo.DeleteBanner(ctx, id); err != nil {
		s.log.Error("failed to delete banner", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
