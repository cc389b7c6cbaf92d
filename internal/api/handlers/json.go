package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}

// failInternal maps any delegate or I/O failure to a fixed safe message. The
// cause is logged with the request id; it reaches the wire only when detail
// exposure is explicitly enabled.
func failInternal(w http.ResponseWriter, r *http.Request, message string, cause error, expose bool) {
	slog.Error("request failed",
		"message", message,
		"error", cause,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimiddleware.GetReqID(r.Context()),
	)

	body := map[string]string{"error": message}
	if expose && cause != nil {
		body["details"] = cause.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}
