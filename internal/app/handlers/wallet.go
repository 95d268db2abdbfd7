package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/auth/jwtmiddleware"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
)

// PackagesHandler lists the fixed recharge catalog.
func PackagesHandler(log *slog.Logger, wallet service.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, wallet.Packages())
	}
}

type RechargeRequest struct {
	PackageID string `json:"package_id" validate:"required"`
}

func RechargeHandler(log *slog.Logger, wallet service.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RechargeHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req RechargeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		user, err := wallet.Recharge(r.Context(), userID, req.PackageID)
		if err != nil {
			logger.Error("recharge failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]int64{
			"coin_balance":    user.CoinBalance,
			"diamond_balance": user.DiamondBalance,
		})
	}
}

type ExchangeRequest struct {
	Direction string `json:"direction" validate:"required,oneof=coins_to_diamonds diamonds_to_coins"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
}

func ExchangeHandler(log *slog.Logger, wallet service.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ExchangeHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req ExchangeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		user, err := wallet.Exchange(r.Context(), userID, req.Direction, req.Amount)
		if err != nil {
			logger.Error("exchange failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]int64{
			"coin_balance":    user.CoinBalance,
			"diamond_balance": user.DiamondBalance,
		})
	}
}

type TransferRequest struct {
	ToEmail  string `json:"to_email" validate:"required,email"`
	Currency string `json:"currency" validate:"omitempty,oneof=coins diamonds"`
	Amount   int64  `json:"amount" validate:"required,gt=0"`
}

func TransferHandler(log *slog.Logger, wallet service.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.TransferHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		currency := req.Currency
		if currency == "" {
			currency = models.CurrencyCoins
		}
		if err := wallet.Transfer(r.Context(), userID, req.ToEmail, currency, req.Amount); err != nil {
			logger.Error("transfer failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

type GiftRequest struct {
	HostID int64 `json:"host_id" validate:"required,gt=0"`
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

func GiftHandler(log *slog.Logger, wallet service.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GiftHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req GiftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		if err := wallet.SendGift(r.Context(), userID, req.HostID, req.Amount); err != nil {
			logger.Error("gift failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func WithdrawHandler(log *slog.Logger, wallet service.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.WithdrawHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		cash, err := wallet.RequestWithdrawal(r.Context(), userID)
		if err != nil {
			logger.Error("withdrawal failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":      "pending",
			"cash_amount": cash,
		})
	}
}

func HistoryHandler(log *slog.Logger, wallet service.WalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.HistoryHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		transactions, err := wallet.History(r.Context(), userID, limit)
		if err != nil {
			logger.Error("history failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, transactions)
	}
}
