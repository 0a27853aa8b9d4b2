package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/customers-api/internal/models"
)

const (
	msgCustomerNotFound = "Customer not found"
	msgInternalError    = "An unexpected error occurred"
)

// handleError maps service errors to HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{Messages: validationErr.Fields})
		return
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			respondError(w, http.StatusNotFound, msgCustomerNotFound)
		case models.CodeInternal:
			// details stay in the log
			logServerError(r, err, logger)
			respondError(w, http.StatusInternalServerError, appErr.Message)
		default:
			logServerError(r, err, logger)
			respondError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	if errors.Is(err, models.ErrNotFound) {
		respondError(w, http.StatusNotFound, msgCustomerNotFound)
		return
	}

	logServerError(r, err, logger)
	respondError(w, http.StatusInternalServerError, msgInternalError)
}

func logServerError(r *http.Request, err error, logger *slog.Logger) {
	logger.Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
}
