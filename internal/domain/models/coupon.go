package models

import "time"

// Coupon types.
const (
	CouponPercentage   = "percentage"
	CouponFixed        = "fixed"
	CouponFreeDelivery = "free_delivery"
)

// Coupon is a discount code managed from the admin dashboard.
type Coupon struct {
	ID        int64      `json:"id"`
	Code      string     `json:"code"`
	Type      string     `json:"type"`
	Value     float64    `json:"value"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Expired reports whether the coupon has an expiry date in the past.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
