package models

import "time"

// FlashSale is the single store-wide sale configuration: a countdown end time
// and the set of discounted products.
type FlashSale struct {
	EndTime    time.Time `json:"end_time"`
	ProductIDs []int64   `json:"product_ids"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Active reports whether the sale countdown is still running.
func (f *FlashSale) Active(now time.Time) bool {
	return f.EndTime.After(now)
}
