// internal/handlers/health.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/pasapalabra/pasapalabra-live/internal/database"
	"github.com/pasapalabra/pasapalabra-live/internal/media"
)

// HealthHandler reports process health: database connectivity and whether
// the media service credentials are configured.
func HealthHandler(issuer *media.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		services := map[string]string{}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := database.DB.Ping(ctx); err != nil {
			resp["status"] = "error"
			services["database"] = "unreachable"
		} else {
			services["database"] = "connected"
		}

		if issuer.Configured() {
			services["media"] = "configured"
		} else {
			services["media"] = "not_configured"
		}
		resp["services"] = services

		w.Header().Set("Content-Type", "application/json")
		if resp["status"] != "ok" {
			w.WriteHeader(http.StatusInternalServerError)
		}
		json.NewEncoder(w).Encode(resp)
	}
}
