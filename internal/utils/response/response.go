// Package response provides helpers for writing consistent JSON HTTP
// responses.
//
// Success responses carry the affected record (or nothing, for 204).
// Error responses carry only a human-readable message:
//
//	{ "detail": "Tank not found" }
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the body of every error response.
type Response struct {
	Detail string `json:"detail"`
}

// InternalError is the only detail a client ever sees for a 500; the cause
// is logged instead.
const InternalError = "Internal Server Error"

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status and detail.
func WriteError(w http.ResponseWriter, status int, detail string) {
	if err := WriteJSON(w, status, Response{Detail: detail}); err != nil {
		slog.Error("failed to write error response", slog.String("error", err.Error()))
	}
}

// WriteInternal logs err and answers 500 with the generic detail.
func WriteInternal(w http.ResponseWriter, msg string, err error, attrs ...any) {
	slog.Error(msg, append(attrs, slog.String("error", err.Error()))...)
	WriteError(w, http.StatusInternalServerError, InternalError)
}

// NoContent answers 204 with an empty body.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
