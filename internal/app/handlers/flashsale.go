package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
)

func FlashSaleHandler(log *slog.Logger, sales service.FlashSaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.FlashSaleHandler"
		logger := log.With(slog.String("op", op))

		view, err := sales.Current(r.Context())
		if err != nil {
			logger.Error("load flash sale failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

type SetFlashSaleRequest struct {
	EndTime    string  `json:"end_time" validate:"required"`
	ProductIDs []int64 `json:"product_ids" validate:"required,min=1"`
}

func SetFlashSaleHandler(log *slog.Logger, sales service.FlashSaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SetFlashSaleHandler"
		logger := log.With(slog.String("op", op))

		var req SetFlashSaleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		endTime, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			http.Error(w, "invalid end_time", http.StatusBadRequest)
			return
		}

		if err := sales.Set(r.Context(), endTime, req.ProductIDs); err != nil {
			logger.Error("set flash sale failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"end_time": endTime.Format(time.RFC3339)})
	}
}

func ClearFlashSaleHandler(log *slog.Logger, sales service.FlashSaleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ClearFlashSaleHandler"
		logger := log.With(slog.String("op", op))

		if err := sales.Clear(r.Context()); err != nil {
			logger.Error("clear flash sale failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
