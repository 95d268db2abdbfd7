package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

func TestApplyCoupon_Percentage(t *testing.T) {
	repo := newFakeCouponRepo()
	repo.coupons["SUMMER10"] = &models.Coupon{Code: "SUMMER10", Type: models.CouponPercentage, Value: 10, IsActive: true}

	svc := service.NewCouponService(testLogger(), repo)

	result, err := svc.Apply(context.Background(), "SUMMER10", 200)
	assert.NoError(t, err)
	assert.Equal(t, 20.0, result.Discount)
	assert.Equal(t, 180.0, result.NewTotal)
	assert.False(t, result.FreeDelivery)
}

func TestApplyCoupon_FixedCappedAtTotal(t *testing.T) {
	repo := newFakeCouponRepo()
	repo.coupons["MINUS50"] = &models.Coupon{Code: "MINUS50", Type: models.CouponFixed, Value: 50, IsActive: true}

	svc := service.NewCouponService(testLogger(), repo)

	result, err := svc.Apply(context.Background(), "MINUS50", 30)
	assert.NoError(t, err)
	assert.Equal(t, 30.0, result.Discount)
	assert.Equal(t, 0.0, result.NewTotal)
}

func TestApplyCoupon_FreeDelivery(t *testing.T) {
	repo := newFakeCouponRepo()
	repo.coupons["SHIPFREE"] = &models.Coupon{Code: "SHIPFREE", Type: models.CouponFreeDelivery, IsActive: true}

	svc := service.NewCouponService(testLogger(), repo)

	result, err := svc.Apply(context.Background(), "SHIPFREE", 100)
	assert.NoError(t, err)
	assert.True(t, result.FreeDelivery)
	assert.Equal(t, 0.0, result.Discount)
	assert.Equal(t, 100.0, result.NewTotal)
}

func TestApplyCoupon_Inactive(t *testing.T) {
	repo := newFakeCouponRepo()
	repo.coupons["OLD"] = &models.Coupon{Code: "OLD", Type: models.CouponPercentage, Value: 10}

	svc := service.NewCouponService(testLogger(), repo)

	_, err := svc.Apply(context.Background(), "OLD", 100)
	assert.ErrorIs(t, err, service.ErrCouponInactive)
}

func TestApplyCoupon_Expired(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	repo := newFakeCouponRepo()
	repo.coupons["GONE"] = &models.Coupon{Code: "GONE", Type: models.CouponPercentage, Value: 10, IsActive: true, ExpiresAt: &expired}

	svc := service.NewCouponService(testLogger(), repo)

	_, err := svc.Apply(context.Background(), "GONE", 100)
	assert.ErrorIs(t, err, service.ErrCouponExpired)
}

func TestApplyCoupon_Unknown(t *testing.T) {
	svc := service.NewCouponService(testLogger(), newFakeCouponRepo())

	_, err := svc.Apply(context.Background(), "NOPE", 100)
	assert.ErrorIs(t, err, storage.ErrCouponNotFound)
}
