// internal/handlers/rooms.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pasapalabra/pasapalabra-live/internal/signaling"
)

// ListRoomsHandler returns the active rooms with their member counts,
// for the dashboard and debugging.
func ListRoomsHandler(srv *signaling.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(srv.Rooms())
	}
}
