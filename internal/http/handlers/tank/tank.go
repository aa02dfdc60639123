// Package tank contains the HTTP handlers for the Tank resource.
//
// Tank ids are assigned by the store and travel as 24-character hex
// strings. A path id of any other shape is rejected with 400 before the
// store is touched.
package tank

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/tank-man-api/internal/storage"
	"github.com/aanand-mishra/tank-man-api/internal/types"
	"github.com/aanand-mishra/tank-man-api/internal/utils/response"
)

// GetList handles GET /tank.
//
// Returns up to storage.TankListLimit tanks as a JSON array, [] when there
// are none. There is no filter and no pagination.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tanks, err := store.GetTanks(r.Context(), storage.TankListLimit)
		if err != nil {
			response.WriteInternal(w, "error getting tanks", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, tanks)
	}
}

// New handles POST /tank.
//
// The tank is inserted and then read back by the id the store assigned, so
// the response shows exactly what was stored.
//
// Success response (201 Created):
//
//	{ "id": "65a1f0c2e4b0a1b2c3d4e5f6", "location": "roof", "lat": 52.5, "long": null }
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := types.DecodeTank(r.Body)
		if err != nil {
			response.WriteError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		id, err := store.CreateTank(r.Context(), t)
		if err != nil {
			response.WriteInternal(w, "error creating tank", err)
			return
		}

		created, err := store.GetTankByID(r.Context(), id)
		if err != nil {
			response.WriteInternal(w, "error reading created tank", err, slog.String("id", id))
			return
		}

		slog.Info("tank created", slog.String("id", id))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// Update handles PATCH /tank/{id}.
//
// The body replaces the whole document: a field left out of the body is
// cleared. The updated tank is read back and returned.
//
// Error responses:
//
//	400 Bad Request           id is not an ObjectID
//	404 Not Found             no tank with that id
//	422 Unprocessable Entity  body is not a Tank
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := types.ValidateTankID(id); err != nil {
			response.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		t, err := types.DecodeTank(r.Body)
		if err != nil {
			response.WriteError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		err = store.ReplaceTankByID(r.Context(), id, t)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "Tank of id: "+id+" not found")
			return
		}
		if err != nil {
			response.WriteInternal(w, "error updating tank", err, slog.String("id", id))
			return
		}

		updated, err := store.GetTankByID(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			// deleted between the replace and the read
			response.WriteError(w, http.StatusNotFound, "Tank of id: "+id+" not found")
			return
		}
		if err != nil {
			response.WriteInternal(w, "error reading updated tank", err, slog.String("id", id))
			return
		}

		slog.Info("tank updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /tank/{id}. Answers 204 with no body.
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := types.ValidateTankID(id); err != nil {
			response.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}

		err := store.DeleteTankByID(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteError(w, http.StatusNotFound, "Tank not found")
			return
		}
		if err != nil {
			response.WriteInternal(w, "error deleting tank", err, slog.String("id", id))
			return
		}

		slog.Info("tank deleted", slog.String("id", id))
		response.NoContent(w)
	}
}
