package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Raymond9734/customers-api/internal/models"
)

// ErrorResponse represents a not-found or server error response
type ErrorResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse carries field errors for a rejected payload
type ValidationErrorResponse struct {
	Messages models.FieldErrors `json:"messages"`
}

// CustomerResponse wraps a single customer
type CustomerResponse struct {
	Customer *models.Customer `json:"customer"`
}

// CustomerListResponse wraps one page of customers and its pager
type CustomerListResponse struct {
	Customers []*models.Customer `json:"customers"`
	Pager     models.Pager       `json:"pager"`
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		// headers are already sent; nothing useful left to do on failure
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a message error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Message: message})
}

// respondSuccess writes a successful response with 200 OK
func respondSuccess(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, data)
}

// respondCreated writes a successful response with 201 Created
func respondCreated(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusCreated, data)
}

// respondNoContent writes an empty 204 response
func respondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
