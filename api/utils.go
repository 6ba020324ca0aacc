package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/htol/booksdb/errs"
	"github.com/htol/booksdb/logger"
	"github.com/htol/booksdb/validator"
)

// respondWithJSON writes v as a JSON response with the given status.
func respondWithJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// respondWithError maps a domain error onto an HTTP status and sends a
// JSON error body. The mapping follows the errs taxonomy: validation
// failures are the client's fault, missing rows are 404, a closed
// connection is 503 and anything else a 500.
func respondWithError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, validator.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrNotConnected), errors.Is(err, errs.ErrConnection):
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		logger.Error(message, "error", err, "status", status)
	} else {
		logger.Warn(message, "error", err, "status", status)
	}
	respondWithJSON(w, status, map[string]interface{}{"error": err.Error()})
}

// respondWithValidationError rejects malformed input before it reaches
// the service layer.
func respondWithValidationError(w http.ResponseWriter, message string) {
	logger.Warn("Validation error", "message", message)
	respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{"error": message})
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		h.ServeHTTP(w, r)
	})
}
