// internal/handlers/catalog.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/pasapalabra/pasapalabra-live/internal/database"
)

// SkinsHandler lists the full skin catalog.
func SkinsHandler(w http.ResponseWriter, r *http.Request) {
	skins, err := database.ListSkins(r.Context())
	if err != nil {
		http.Error(w, "failed to fetch skins", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(skins)
}

// CameraFiltersHandler lists the camera filter catalog.
func CameraFiltersHandler(w http.ResponseWriter, r *http.Request) {
	filters, err := database.ListCameraFilters(r.Context())
	if err != nil {
		http.Error(w, "failed to fetch camera filters", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(filters)
}

// VIPLevelHandler returns the details of one VIP level.
func VIPLevelHandler(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil {
		http.Error(w, "invalid level number", http.StatusBadRequest)
		return
	}

	v, err := database.GetVIPLevel(r.Context(), level)
	if errors.Is(err, pgx.ErrNoRows) {
		http.Error(w, "vip level not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
