package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mari/gift-list-website/internal/domain"
	"github.com/mari/gift-list-website/internal/service"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondErrorMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondError maps service errors onto the HTTP surface. Credential
// failures stay generic on purpose; unexpected errors are logged and the
// client only sees a try-again message.
func respondError(w http.ResponseWriter, log *logrus.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		respondErrorMessage(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrTooManyRequests):
		respondErrorMessage(w, http.StatusTooManyRequests, service.ErrTooManyRequests.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		respondErrorMessage(w, http.StatusConflict, service.ErrUsernameTaken.Error())
	case errors.Is(err, service.ErrNotAuthenticated):
		respondErrorMessage(w, http.StatusUnauthorized, service.ErrNotAuthenticated.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		respondErrorMessage(w, http.StatusNotFound, domain.ErrUserNotFound.Error())
	case errors.Is(err, domain.ErrGiftNotFound):
		respondErrorMessage(w, http.StatusNotFound, domain.ErrGiftNotFound.Error())
	case isValidationError(err):
		respondErrorMessage(w, http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).Error("unexpected error")
		respondErrorMessage(w, http.StatusInternalServerError, "something went wrong, try again")
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		domain.ErrInvalidUsername,
		domain.ErrInvalidDisplayName,
		domain.ErrInvalidEmail,
		domain.ErrInvalidPassword,
		domain.ErrInvalidGiftName,
		domain.ErrInvalidGiftPrice,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
