package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/auth/jwtmiddleware"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/domain/models"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
)

// ProfileHandler returns the account screen payload: identity, balances,
// loyalty and recent transactions.
func ProfileHandler(log *slog.Logger, profiles service.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ProfileHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		profile, err := profiles.Profile(r.Context(), userID)
		if err != nil {
			logger.Error("profile failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, profile)
	}
}

type userView struct {
	ID             int64  `json:"id"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	CoinBalance    int64  `json:"coin_balance"`
	DiamondBalance int64  `json:"diamond_balance"`
}

// UsersHandler is the admin user list. Password hashes stay server-side.
func UsersHandler(log *slog.Logger, profiles service.ProfileService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UsersHandler"
		logger := log.With(slog.String("op", op))

		users, err := profiles.ListUsers(r.Context())
		if err != nil {
			logger.Error("list users failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		views := make([]userView, 0, len(users))
		for _, u := range users {
			views = append(views, viewOf(u))
		}
		writeJSON(w, http.StatusOK, views)
	}
}

func viewOf(u *models.User) userView {
	return userView{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		CoinBalance:    u.CoinBalance,
		DiamondBalance: u.DiamondBalance,
	}
}

// LoyaltyHandler returns the loyalty card view on its own.
func LoyaltyHandler(log *slog.Logger, loyalty service.LoyaltyService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoyaltyHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		status, err := loyalty.Status(r.Context(), userID)
		if err != nil {
			logger.Error("loyalty failed", slog.Any("error", err))
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}
