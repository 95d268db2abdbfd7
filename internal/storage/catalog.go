package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogStorage covers products, categories, brands and banners. All of it
// is plain CRUD with last-write-wins semantics.
type CatalogStorage interface {
	CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]*models.Product, error)
	ListProductsByIDs(ctx context.Context, ids []int64) ([]*models.Product, error)

	CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateBrand(ctx context.Context, b *models.Brand) (*models.Brand, error)
	ListBrands(ctx context.Context) ([]*models.Brand, error)
	DeleteBrand(ctx context.Context, id int64) error

	CreateBanner(ctx context.Context, b *models.Banner) (*models.Banner, error)
	ListBanners(ctx context.Context, activeOnly bool) ([]*models.Banner, error)
	DeleteBanner(ctx context.Context, id int64) error
}

type catalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) CatalogStorage {
	return &catalogRepository{db: db}
}

const productColumns = `id, name_fr, name_ar, COALESCE(description_fr, ''), COALESCE(description_ar, ''),
	price, COALESCE(discount_price, 0), COALESCE(delivery_price, 0), category_id, brand_id,
	main_image, images, sizes, colors, status, created_at`

func (r *catalogRepository) CreateProduct(ctx context.Context, p *models.Product) (*models.Product, error) {
	query := `INSERT INTO products
	          (name_fr, name_ar, description_fr, description_ar, price, discount_price, delivery_price,
	           category_id, brand_id, main_image, images, sizes, colors, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		p.NameFr, p.NameAr, p.DescriptionFr, p.DescriptionAr, p.Price, p.DiscountPrice, p.DeliveryPrice,
		p.CategoryID, p.BrandID, p.MainImage, pq.Array(p.Images), pq.Array(p.Sizes), pq.Array(p.Colors), p.Status,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (r *catalogRepository) UpdateProduct(ctx context.Context, p *models.Product) error {
	query := `UPDATE products SET
	          name_fr = $1, name_ar = $2, description_fr = $3, description_ar = $4,
	          price = $5, discount_price = $6, delivery_price = $7, category_id = $8, brand_id = $9,
	          main_image = $10, images = $11, sizes = $12, colors = $13, status = $14
	          WHERE id = $15`
	res, err := r.db.ExecContext(ctx, query,
		p.NameFr, p.NameAr, p.DescriptionFr, p.DescriptionAr,
		p.Price, p.DiscountPrice, p.DeliveryPrice, p.CategoryID, p.BrandID,
		p.MainImage, pq.Array(p.Images), pq.Array(p.Sizes), pq.Array(p.Colors), p.Status, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *catalogRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *catalogRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProductRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanProductRow(row *sql.Row) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.NameFr, &p.NameAr, &p.DescriptionFr, &p.DescriptionAr,
		&p.Price, &p.DiscountPrice, &p.DeliveryPrice, &p.CategoryID, &p.BrandID,
		&p.MainImage, pq.Array(&p.Images), pq.Array(&p.Sizes), pq.Array(&p.Colors), &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return r.queryProducts(ctx, "SELECT "+productColumns+" FROM products ORDER BY created_at DESC")
}

func (r *catalogRepository) ListProductsByIDs(ctx context.Context, ids []int64) ([]*models.Product, error) {
	if len(ids) == 0 {
		return []*models.Product{}, nil
	}
	return r.queryProducts(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = ANY($1) ORDER BY created_at DESC",
		pq.Array(ids))
}

func (r *catalogRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.ID, &p.NameFr, &p.NameAr, &p.DescriptionFr, &p.DescriptionAr,
			&p.Price, &p.DiscountPrice, &p.DeliveryPrice, &p.CategoryID, &p.BrandID,
			&p.MainImage, pq.Array(&p.Images), pq.Array(&p.Sizes), pq.Array(&p.Colors), &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *catalogRepository) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO categories (name_fr, name_ar, image_url) VALUES ($1, $2, $3) RETURNING id",
		c.NameFr, c.NameAr, c.ImageURL,
	).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name_fr, name_ar, COALESCE(image_url, '') FROM categories ORDER BY name_fr")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		c := &models.Category{}
		if err := rows.Scan(&c.ID, &c.NameFr, &c.NameAr, &c.ImageURL); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *catalogRepository) DeleteCategory(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
	return err
}

func (r *catalogRepository) CreateBrand(ctx context.Context, b *models.Brand) (*models.Brand, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO brands (name, logo_url) VALUES ($1, $2) RETURNING id",
		b.Name, b.LogoURL,
	).Scan(&b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return b, nil
}

func (r *catalogRepository) ListBrands(ctx context.Context) ([]*models.Brand, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, COALESCE(logo_url, '') FROM brands ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	var brands []*models.Brand
	for rows.Next() {
		b := &models.Brand{}
		if err := rows.Scan(&b.ID, &b.Name, &b.LogoURL); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *catalogRepository) DeleteBrand(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM brands WHERE id = $1", id)
	return err
}

func (r *catalogRepository) CreateBanner(ctx context.Context, b *models.Banner) (*models.Banner, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO banners (image_url, link, position, is_active) VALUES ($1, $2, $3, $4) RETURNING id",
		b.ImageURL, b.Link, b.Position, b.IsActive,
	).Scan(&b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}
	return b, nil
}

func (r *catalogRepository) ListBanners(ctx context.Context, activeOnly bool) ([]*models.Banner, error) {
	query := "SELECT id, image_url, COALESCE(link, ''), position, is_active FROM banners"
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY position"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query banners: %w", err)
	}
	defer rows.Close()

	var banners []*models.Banner
	for rows.Next() {
		b := &models.Banner{}
		if err := rows.Scan(&b.ID, &b.ImageURL, &b.Link, &b.Position, &b.IsActive); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *catalogRepository) DeleteBanner(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM banners WHERE id = $1", id)
	return err
}
