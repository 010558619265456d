package handler

// RESPONSE HELPERS:
// These functions standardise how the JSON side of the site answers.
//
//   writeJSON(w, http.StatusOK, data)
//   writeError(w, err)
//
// CONSISTENT ERROR FORMAT:
// Every JSON error has the same shape:
//   {"error": "validation_error", "message": "query is required"}
//
// HTML pages do not use writeJSON/writeError; they go through Pages.Error,
// Pages.ServerError and Pages.CandidatesError. classifyError is shared so
// both sides agree on status codes and messages.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/devfinder/internal/apperror"
)

// ErrorResponse is the standard error format returned by the JSON endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "remote_error")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code.
// Headers and status must be written before the body.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status and sends it as JSON.
func writeError(w http.ResponseWriter, err error) {
	status, errorType, message := classifyError(err)
	writeJSON(w, status, ErrorResponse{
		Error:   errorType,
		Message: message,
	})
}

// classifyError maps a domain error to a status, a machine-readable type and
// the message the client may see.
//
// ERROR MAPPING:
//
//	apperror.ErrValidation → 400 validation_error
//	apperror.ErrNotFound   → 404 not_found
//	apperror.ErrRemote     → 502 remote_error (GitHub failed, not us)
//	anything else          → 500 internal_error, details hidden
//
// errors.Is walks the whole chain, so a service error such as
// fmt.Errorf("searching users: %w", remoteErr) still maps to 502.
func classifyError(err error) (status int, errorType, message string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, "validation_error", apperror.MessageOf(err)
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, "not_found", apperror.MessageOf(err)
	case errors.Is(err, apperror.ErrRemote):
		return http.StatusBadGateway, "remote_error", apperror.MessageOf(err)
	default:
		// Never expose internal error details to the client.
		return http.StatusInternalServerError, "internal_error", "An internal error occurred"
	}
}

// HandleHealth reports that the process is up. It does not call GitHub.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
