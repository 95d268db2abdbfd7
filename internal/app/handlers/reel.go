package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/auth/jwtmiddleware"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
)

type CreateReelRequest struct {
	MediaURL string `json:"media_url" validate:"required,url"`
	Caption  string `json:"caption"`
}

func CreateReelHandler(log *slog.Logger, reels service.ReelService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateReelHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req CreateReelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		reel, err := reels.Create(r.Context(), userID, req.MediaURL, req.Caption)
		if err != nil {
			logger.Error("create reel failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, reel)
	}
}

func ReelsHandler(log *slog.Logger, reels service.ReelService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ReelsHandler"
		logger := log.With(slog.String("op", op))

		list, err := reels.ListActive(r.Context())
		if err != nil {
			logger.Error("list reels failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

func DeleteReelHandler(log *slog.Logger, reels service.ReelService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteReelHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		role, _ := jwtmiddleware.RoleFromContext(r.Context())
		isAdmin := role == models.RoleAdmin

		reelID := chi.URLParam(r, "id")
		if reelID == "" {
			http.Error(w, "invalid reel id", http.StatusBadRequest)
			return
		}

		if err := reels.Delete(r.Context(), userID, isAdmin, reelID); err != nil {
			logger.Error("delete reel failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
