package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/lib/upload"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/service"
	"github.com/Alcatraz-Dev/Tama-Clothing-App-sub005/internal/storage"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps service sentinel errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrUnknownPackage),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrWithdrawalBelowMinimum),
		errors.Is(err, service.ErrNotFriends),
		errors.Is(err, service.ErrAlreadyFriends),
		errors.Is(err, service.ErrRequestAlreadyPending),
		errors.Is(err, service.ErrRequestResolved),
		errors.Is(err, service.ErrSelfTransfer),
		errors.Is(err, service.ErrCouponInactive),
		errors.Is(err, service.ErrCouponExpired),
		errors.Is(err, service.ErrUserAlreadyExists):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrNotRequestReceiver),
		errors.Is(err, service.ErrNotReelOwner):
		status = http.StatusForbidden
	case errors.Is(err, storage.ErrUserNotFound),
		errors.Is(err, storage.ErrProductNotFound),
		errors.Is(err, storage.ErrOrderNotFound),
		errors.Is(err, storage.ErrCouponNotFound),
		errors.Is(err, storage.ErrRequestNotFound),
		errors.Is(err, storage.ErrReelNotFound),
		errors.Is(err, service.ErrFlashSaleInactive):
		status = http.StatusNotFound
	case errors.Is(err, upload.ErrUploadFailed):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorResponse{Error: unwrapMessage(err)})
}

// unwrapMessage strips the "service.X.Y:" operation prefixes so clients see
// the plain cause.
func unwrapMessage(err error) string {
	cause := err
	for {
		next := errors.Unwrap(cause)
		if next == nil {
			return cause.Error()
		}
		cause = next
	}
}
