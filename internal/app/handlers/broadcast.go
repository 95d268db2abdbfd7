package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
)

type BroadcastRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"required,max=2000"`
}

func BroadcastHandler(log *slog.Logger, broadcast service.BroadcastService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.BroadcastHandler"
		logger := log.With(slog.String("op", op))

		var req BroadcastRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		batches, err := broadcast.Broadcast(r.Context(), req.Title, req.Body)
		if err != nil {
			logger.Error("broadcast failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]int{"batches": batches})
	}
}
