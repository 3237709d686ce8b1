// internal/handlers/progress.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pasapalabra/pasapalabra-live/internal/database"
	"github.com/pasapalabra/pasapalabra-live/internal/models"
)

// UserSkinsHandler lists the skins a user has unlocked.
func UserSkinsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	skins, err := database.GetUserSkins(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to fetch user skins", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(skins)
}

// UserCameraFiltersHandler lists the camera filters a user has unlocked.
func UserCameraFiltersHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	filters, err := database.GetUserCameraFilters(r.Context(), userID)
	if err != nil {
		http.Error(w, "failed to fetch user camera filters", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(filters)
}

type addProgressRequest struct {
	XPGained int `json:"xp_gained"`
}

type addProgressResponse struct {
	Success         bool             `json:"success"`
	UpdatedUser     *models.User     `json:"updatedUser,omitempty"`
	NewLevelReached bool             `json:"newLevelReached"`
	NewVipLevel     *models.VipLevel `json:"newVipLevel,omitempty"`
}

// AddProgressHandler credits XP to a user and recomputes their VIP level.
func AddProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	var req addProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.XPGained <= 0 {
		http.Error(w, "xp_gained must be positive", http.StatusBadRequest)
		return
	}

	user, reached, level, err := database.AddUserXP(r.Context(), userID, req.XPGained)
	if err != nil {
		http.Error(w, "failed to update progress", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(addProgressResponse{
		Success:         true,
		UpdatedUser:     user,
		NewLevelReached: reached,
		NewVipLevel:     level,
	})
}
