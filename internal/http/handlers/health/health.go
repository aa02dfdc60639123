// Package health reports whether the service can reach its store.
package health

import (
	"net/http"

	"github.com/aanand-mishra/tank-man-api/internal/storage"
	"github.com/aanand-mishra/tank-man-api/internal/utils/response"
)

// Check handles GET /health.
func Check(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			response.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
