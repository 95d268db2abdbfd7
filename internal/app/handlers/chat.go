package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/auth/jwtmiddleware"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
)

type SendMessageRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

func SendMessageHandler(log *slog.Logger, chat service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SendMessageHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		msg, err := chat.SendCustomerMessage(r.Context(), userID, req.Body)
		if err != nil {
			logger.Error("send message failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, msg)
	}
}

func MyThreadHandler(log *slog.Logger, chat service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.MyThreadHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		msgs, err := chat.Thread(r.Context(), userID, models.SenderSupport)
		if err != nil {
			logger.Error("load thread failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, msgs)
	}
}

func ThreadsHandler(log *slog.Logger, chat service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ThreadsHandler"
		logger := log.With(slog.String("op", op))

		threads, err := chat.ListThreads(r.Context())
		if err != nil {
			logger.Error("list threads failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, threads)
	}
}

func threadUserID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
}

func ThreadHandler(log *slog.Logger, chat service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ThreadHandler"
		logger := log.With(slog.String("op", op))

		userID, err := threadUserID(r)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		msgs, err := chat.Thread(r.Context(), userID, models.SenderCustomer)
		if err != nil {
			logger.Error("load thread failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, msgs)
	}
}

func ReplyHandler(log *slog.Logger, chat service.ChatService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ReplyHandler"
		logger := log.With(slog.String("op", op))

		userID, err := threadUserID(r)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusBadRequest)
			return
		}

		var req SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		msg, err := chat.SendSupportMessage(r.Context(), userID, req.Body)
		if err != nil {
			logger.Error("send reply failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, msg)
	}
}
