package handlers

import (
	"encoding/json"
	"errors"
	"miniblog/internal/authz"
	"miniblog/internal/repository"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteDomainError maps the error taxonomy onto HTTP statuses. Errors are
// surfaced verbatim; none of them are transient.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrValidation):
		WriteError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, authz.ErrNotAllowed):
		WriteError(w, err.Error(), http.StatusForbidden)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}
