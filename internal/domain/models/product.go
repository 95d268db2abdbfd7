package models

import "time"

// Product statuses.
const (
	ProductActive = "active"
	ProductHidden = "hidden"
)

// Product is a catalog item. Names and descriptions are bilingual
// (French / Tunisian Arabic), matching the storefront.
type Product struct {
	ID            int64     `json:"id"`
	NameFr        string    `json:"name_fr"`
	NameAr        string    `json:"name_ar"`
	DescriptionFr string    `json:"description_fr,omitempty"`
	DescriptionAr string    `json:"description_ar,omitempty"`
	Price         float64   `json:"price"`
	DiscountPrice float64   `json:"discount_price,omitempty"`
	DeliveryPrice float64   `json:"delivery_price,omitempty"`
	CategoryID    int64     `json:"category_id"`
	BrandID       *int64    `json:"brand_id,omitempty"`
	MainImage     string    `json:"main_image"`
	Images        []string  `json:"images,omitempty"`
	Sizes         []string  `json:"sizes,omitempty"`
	Colors        []string  `json:"colors,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type Category struct {
	ID       int64  `json:"id"`
	NameFr   string `json:"name_fr"`
	NameAr   string `json:"name_ar"`
	ImageURL string `json:"image_url,omitempty"`
}

type Brand struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// Banner is a promotional image shown on the storefront home screen.
type Banner struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"image_url"`
	Link     string `json:"link,omitempty"`
	Position int    `json:"position"`
	IsActive bool   `json:"is_active"`
}
