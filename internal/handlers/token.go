// internal/handlers/token.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pasapalabra/pasapalabra-live/internal/config"
	"github.com/pasapalabra/pasapalabra-live/internal/media"
)

type mediaTokenResponse struct {
	Token       string `json:"token"`
	IsSpectator bool   `json:"isSpectator"`
	Permissions struct {
		CanPublish     bool `json:"canPublish"`
		CanSubscribe   bool `json:"canSubscribe"`
		CanPublishData bool `json:"canPublishData"`
	} `json:"permissions"`
}

// MediaTokenHandler issues a join token for the external video service.
// Spectators are detected from the explicit query flag or the username
// conventions the frontend uses for spectate links.
func MediaTokenHandler(issuer *media.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		room := q.Get("room")
		username := q.Get("username")
		userID := q.Get("userId")
		if room == "" || username == "" || userID == "" {
			http.Error(w, "missing required parameters", http.StatusBadRequest)
			return
		}

		spectator := q.Get("spectator") == "true" ||
			strings.Contains(strings.ToLower(username), "spectator") ||
			strings.Contains(username, "\U0001F441")

		token, err := issuer.Issue(room, userID, username, spectator)
		if err == media.ErrNotConfigured {
			http.Error(w, "media configuration missing", http.StatusInternalServerError)
			return
		}
		if err != nil {
			http.Error(w, "failed to generate token", http.StatusInternalServerError)
			return
		}

		resp := mediaTokenResponse{Token: token, IsSpectator: spectator}
		resp.Permissions.CanPublish = !spectator
		resp.Permissions.CanSubscribe = true
		resp.Permissions.CanPublishData = true

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// MediaConfigHandler exposes the client-side relay configuration: the media
// server URL and the ICE servers to use for connection negotiation.
func MediaConfigHandler(cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"url":        cfg.MediaServerURL,
			"iceServers": cfg.ICEServers,
		})
	}
}
