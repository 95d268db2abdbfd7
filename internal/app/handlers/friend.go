package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/auth/jwtmiddleware"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
)

type FriendRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func SendFriendRequestHandler(log *slog.Logger, friends service.FriendService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SendFriendRequestHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req FriendRequestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		created, err := friends.SendRequest(r.Context(), userID, req.Email)
		if err != nil {
			logger.Error("send request failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func AcceptFriendRequestHandler(log *slog.Logger, friends service.FriendService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AcceptFriendRequestHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		requestID := chi.URLParam(r, "id")
		if requestID == "" {
			http.Error(w, "request id is required", http.StatusBadRequest)
			return
		}

		if err := friends.Accept(r.Context(), userID, requestID); err != nil {
			logger.Error("accept failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
	}
}

func RejectFriendRequestHandler(log *slog.Logger, friends service.FriendService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RejectFriendRequestHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		requestID := chi.URLParam(r, "id")
		if requestID == "" {
			http.Error(w, "request id is required", http.StatusBadRequest)
			return
		}

		if err := friends.Reject(r.Context(), userID, requestID); err != nil {
			logger.Error("reject failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
	}
}

func RemoveFriendHandler(log *slog.Logger, friends service.FriendService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveFriendHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		friendID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid friend id", http.StatusBadRequest)
			return
		}

		if err := friends.RemoveFriend(r.Context(), userID, friendID); err != nil {
			logger.Error("remove friend failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

func FriendsListHandler(log *slog.Logger, friends service.FriendService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.FriendsListHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		list, err := friends.ListFriends(r.Context(), userID)
		if err != nil {
			logger.Error("list friends failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

// FriendRequestsHandler lists pending requests, incoming by default,
// outgoing with ?direction=outgoing.
func FriendRequestsHandler(log *slog.Logger, friends service.FriendService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.FriendRequestsHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var err error
		var list interface{}
		if r.URL.Query().Get("direction") == "outgoing" {
			list, err = friends.ListOutgoing(r.Context(), userID)
		} else {
			list, err = friends.ListIncoming(r.Context(), userID)
		}
		if err != nil {
			logger.Error("list requests failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}
