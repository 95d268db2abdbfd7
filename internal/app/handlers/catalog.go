package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
)

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func ProductsHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ProductsHandler"

		products, err := catalog.ListProducts(r.Context())
		if err != nil {
			log.Error("list products failed", slog.String("op", op), slog.Any("error", err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, products)
	}
}

func ProductHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ProductHandler"

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		product, err := catalog.GetProduct(r.Context(), id)
		if err != nil {
			log.Error("get product failed", slog.String("op", op), slog.Any("error", err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, product)
	}
}

type ProductRequest struct {
	NameFr        string   `json:"name_fr" validate:"required"`
	NameAr        string   `json:"name_ar" validate:"required"`
	DescriptionFr string   `json:"description_fr"`
	DescriptionAr string   `json:"description_ar"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	DiscountPrice float64  `json:"discount_price"`
	DeliveryPrice float64  `json:"delivery_price"`
	CategoryID    int64    `json:"category_id" validate:"required"`
	BrandID       *int64   `json:"brand_id"`
	MainImage     string   `json:"main_image" validate:"required"`
	Images        []string `json:"images"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Status        string   `json:"status"`
}

func (req *ProductRequest) toModel() *models.Product {
	return &models.Product{
		NameFr:        req.NameFr,
		NameAr:        req.NameAr,
		DescriptionFr: req.DescriptionFr,
		DescriptionAr: req.DescriptionAr,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		DeliveryPrice: req.DeliveryPrice,
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
		MainImage:     req.MainImage,
		Images:        req.Images,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		Status:        req.Status,
	}
}

func CreateProductHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateProductHandler"
		logger := log.With(slog.String("op", op))

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		product, err := catalog.CreateProduct(r.Context(), req.toModel())
		if err != nil {
			logger.Error("create product failed", slog.Any("error", err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, product)
	}
}

func UpdateProductHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateProductHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		product := req.toModel()
		product.ID = id
		if err := catalog.UpdateProduct(r.Context(), product); err != nil {
			logger.Error("update product failed", slog.Any("error", err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, product)
	}
}

func DeleteProductHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteProductHandler"
		logger := log.With(slog.String("op", op))

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid product id", http.StatusBadRequest)
			return
		}
		if err := catalog.DeleteProduct(r.Context(), id); err != nil {
			logger.Error("delete product failed", slog.Any("error", err))
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func CategoriesHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CategoriesHandler"

		categories, err := catalog.ListCategories(r.Context())
		if err != nil {
			log.Error("list categories failed", slog.String("op", op), slog.Any("error", err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, categories)
	}
}

type CategoryRequest struct {
	NameFr   string `json:"name_fr" validate:"required"`
	NameAr   string `json:"name_ar" validate:"required"`
	ImageURL string `json:"image_url"`
}

func CreateCategoryHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCategoryHandler"
		logger := log.With(slog.String("op", op))

		var req CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		category, err := catalog.CreateCategory(r.Context(), &models.Category{
			NameFr: req.NameFr, NameAr: req.NameAr, ImageURL: req.ImageURL,
		})
		if err != nil {
			logger.Error("create category failed", slog.Any("error", err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, category)
	}
}

func DeleteCategoryHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCategoryHandler"

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid category id", http.StatusBadRequest)
			return
		}
		if err := catalog.DeleteCategory(r.Context(), id); err != nil {
			log.Error("delete category failed", slog.String("op", op), slog.Any("error", err))
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func BrandsHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.BrandsHandler"

		brands, err := catalog.ListBrands(r.Context())
		if err != nil {
			log.Error("list brands failed", slog.String("op", op), slog.Any("error", err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, brands)
	}
}

type BrandRequest struct {
	Name    string `json:"name" validate:"required"`
	LogoURL string `json:"logo_url"`
}

func CreateBrandHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateBrandHandler"
		logger := log.With(slog.String("op", op))

		var req BrandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		brand, err := catalog.CreateBrand(r.Context(), &models.Brand{Name: req.Name, LogoURL: req.LogoURL})
		if err != nil {
			logger.Error("create brand failed", slog.Any("error", err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, brand)
	}
}

func DeleteBrandHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteBrandHandler"

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid brand id", http.StatusBadRequest)
			return
		}
		if err := catalog.DeleteBrand(r.Context(), id); err != nil {
			log.Error("delete brand failed", slog.String("op", op), slog.Any("error", err))
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// BannersHandler lists banners; the public storefront sees active ones only.
func BannersHandler(log *slog.Logger, catalog service.CatalogService, activeOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.BannersHandler"

		banners, err := catalog.ListBanners(r.Context(), activeOnly)
		if err != nil {
			log.Error("list banners failed", slog.String("op", op), slog.Any("error", err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, banners)
	}
}

type BannerRequest struct {
	ImageURL string `json:"image_url" validate:"required"`
	Link     string `json:"link"`
	Position int    `json:"position"`
	IsActive bool   `json:"is_active"`
}

func CreateBannerHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateBannerHandler"
		logger := log.With(slog.String("op", op))

		var req BannerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		banner, err := catalog.CreateBanner(r.Context(), &models.Banner{
			ImageURL: req.ImageURL, Link: req.Link, Position: req.Position, IsActive: req.IsActive,
		})
		if err != nil {
			logger.Error("create banner failed", slog.Any("error", err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, banner)
	}
}

func DeleteBannerHandler(log *slog.Logger, catalog service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteBannerHandler"

		id, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid banner id", http.StatusBadRequest)
			return
		}
		if err := catalog.DeleteBanner(r.Context(), id); err != nil {
			log.Error("delete banner failed", slog.String("op", op), slog.Any("error", err))
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
