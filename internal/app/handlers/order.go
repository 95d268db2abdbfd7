package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/auth/jwtmiddleware"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
)

type OrderItemRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Name      string  `json:"name" validate:"required"`
	Price     float64 `json:"price" validate:"required,gt=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
}

type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Total         float64            `json:"total" validate:"required,gt=0"`
	PaymentMethod string             `json:"payment_method" validate:"required"`
}

func CreateOrderHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateOrderHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req CreateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			items = append(items, models.OrderItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
				Size:      item.Size,
				Color:     item.Color,
			})
		}

		order, err := orders.Create(r.Context(), &models.Order{
			UserID:        userID,
			Items:         items,
			Total:         req.Total,
			PaymentMethod: req.PaymentMethod,
		})
		if err != nil {
			logger.Error("create order failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, order)
	}
}

func MyOrdersHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MyOrdersHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		list, err := orders.ListByUser(r.Context(), userID)
		if err != nil {
			logger.Error("list orders failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

func AdminOrdersHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminOrdersHandler"
		logger := log.With(slog.String("op", op))

		list, err := orders.List(r.Context())
		if err != nil {
			logger.Error("list orders failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func OrderStatusHandler(log *slog.Logger, orders service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OrderStatusHandler"
		logger := log.With(slog.String("op", op))

		orderID, err := idParam(r)
		if err != nil {
			http.Error(w, "invalid order id", http.StatusBadRequest)
			return
		}

		var req OrderStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		if err := orders.UpdateStatus(r.Context(), orderID, req.Status); err != nil {
			logger.Error("update status failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
	}
}
