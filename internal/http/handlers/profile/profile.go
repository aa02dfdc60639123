// Package profile contains the HTTP handlers for the Profile resource.
//
// Handlers are built by factory functions that receive the storage and
// return the http.HandlerFunc the router needs:
//
//	router.HandleFunc("POST /profile", profile.New(store))
//
// New(store) runs once at startup; the returned closure runs on every
// request.
package profile

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/aanand-mishra/tank-man-api/internal/storage"
	"github.com/aanand-mishra/tank-man-api/internal/types"
	"github.com/aanand-mishra/tank-man-api/internal/utils/response"
)

// New handles POST /profile.
//
// Every field of the body is optional; an empty body creates an empty
// profile. The id is always a fresh random UUID.
//
// Success response (201 Created):
//
//	{ "id": "3f0c…", "username": "ada", "role": null, "color": "teal" }
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := types.DecodeProfile(r.Body)
		if err != nil {
			response.WriteError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		p.ID = types.String(uuid.NewString())

		if err := store.CreateProfile(r.Context(), p); err != nil {
			response.WriteInternal(w, "error creating profile", err)
			return
		}

		slog.Info("profile created", slog.String("id", *p.ID))
		response.WriteJSON(w, http.StatusCreated, p)
	}
}

// Get handles GET /profile.
//
// A deployment normally holds a single profile, so no filter is applied:
// whichever profile the store returns first is the answer.
//
// Error responses:
//
//	404 Not Found  no profile has been created yet
func Get(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := store.GetProfile(r.Context())
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "Profile not found")
			return
		}
		if err != nil {
			response.WriteInternal(w, "error getting profile", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, p)
	}
}
