package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/codequest532/vyrona-social/internal/services"
	"github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

// handleServiceError maps the coordinator's typed failures onto HTTP status
// codes so callers can distinguish not-found, forbidden and conflict without
// parsing message text.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		errorResponse(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		errorResponse(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrRoomInactive),
		errors.Is(err, services.ErrInvalidCode),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNotAMember),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrProductNotFound):
		errorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyMember),
		errors.Is(err, services.ErrAlreadyAdmin),
		errors.Is(err, services.ErrRoomFull),
		errors.Is(err, services.ErrUserExists):
		errorResponse(w, http.StatusConflict, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		errorResponse(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// callerID pulls the authenticated user from the request context set by the
// auth middleware.
func callerID(r *http.Request) (uint, bool) {
	userID, ok := r.Context().Value("userID").(uint)
	return userID, ok && userID != 0
}

func callerName(r *http.Request) string {
	name, _ := r.Context().Value("username").(string)
	return name
}
