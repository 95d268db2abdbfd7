package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
)

type ApplyCouponRequest struct {
	Code  string  `json:"code" validate:"required"`
	Total float64 `json:"total" validate:"gte=0"`
}

func ApplyCouponHandler(log *slog.Logger, coupons service.CouponService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ApplyCouponHandler"
		logger := log.With(slog.String("op", op))

		var req ApplyCouponRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		result, err := coupons.Apply(r.Context(), req.Code, req.Total)
		if err != nil {
			logger.Error("apply coupon failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

type CouponRequest struct {
	Code      string  `json:"code" validate:"required"`
	Type      string  `json:"type" validate:"required,oneof=percentage fixed free_delivery"`
	Value     float64 `json:"value" validate:"gte=0"`
	ExpiresAt *string `json:"expires_at"`
	Active    *bool   `json:"active"`
}

func CreateCouponHandler(log *slog.Logger, coupons service.CouponService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateCouponHandler"
		logger := log.With(slog.String("op", op))

		var req CouponRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		coupon := &models.Coupon{
			Code:     req.Code,
			Type:     req.Type,
			Value:    req.Value,
			IsActive: true,
		}
		if req.Active != nil {
			coupon.IsActive = *req.Active
		}
		if req.ExpiresAt != nil {
			t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
			if err != nil {
				http.Error(w, "invalid expires_at", http.StatusBadRequest)
				return
			}
			coupon.ExpiresAt = &t
		}

		created, err := coupons.Create(r.Context(), coupon)
		if err != nil {
			logger.Error("create coupon failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func CouponsHandler(log *slog.Logger, coupons service.CouponService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CouponsHandler"
		logger := log.With(slog.String("op", op))

		list, err := coupons.List(r.Context())
		if err != nil {
			logger.Error("list coupons failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

type CouponActiveRequest struct {
	Active bool `json:"active"`
}

func CouponActiveHandler(log *slog.Logger, coupons service.CouponService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CouponActiveHandler"
		logger := log.With(slog.String("op", op))

		code := chi.URLParam(r, "code")
		if code == "" {
			http.Error(w, "invalid coupon code", http.StatusBadRequest)
			return
		}

		var req CouponActiveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if err := coupons.SetActive(r.Context(), code, req.Active); err != nil {
			logger.Error("toggle coupon failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"active": req.Active})
	}
}

func DeleteCouponHandler(log *slog.Logger, coupons service.CouponService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteCouponHandler"
		logger := log.With(slog.String("op", op))

		code := chi.URLParam(r, "code")
		if code == "" {
			http.Error(w, "invalid coupon code", http.StatusBadRequest)
			return
		}

		if err := coupons.Delete(r.Context(), code); err != nil {
			logger.Error("delete coupon failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
