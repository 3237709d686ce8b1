// internal/media/token.go
package media

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotConfigured is returned when the media API credentials are missing.
var ErrNotConfigured = errors.New("media credentials not configured")

// Grant is the video permission block the media service expects inside the
// token. Spectators can subscribe and use data channels but never publish.
type Grant struct {
	RoomJoin             bool   `json:"roomJoin"`
	Room                 string `json:"room"`
	CanPublish           bool   `json:"canPublish"`
	CanSubscribe         bool   `json:"canSubscribe"`
	CanPublishData       bool   `json:"canPublishData"`
	CanUpdateOwnMetadata bool   `json:"canUpdateOwnMetadata"`
}

// TokenIssuer mints HS256-signed join tokens for the external video service.
// The token is a precondition for clients joining real-time media; the media
// path itself never passes through this process.
type TokenIssuer struct {
	apiKey    string
	apiSecret string
	ttl       time.Duration
	now       func() time.Time
}

func NewTokenIssuer(apiKey, apiSecret string) *TokenIssuer {
	return &TokenIssuer{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		ttl:       time.Hour,
		now:       time.Now,
	}
}

// Configured reports whether both credential halves are present.
func (ti *TokenIssuer) Configured() bool {
	return ti.apiKey != "" && ti.apiSecret != ""
}

// Issue builds a signed token granting userID access to room. Spectator
// tokens carry a publish-denied grant.
func (ti *TokenIssuer) Issue(room, userID, username string, spectator bool) (string, error) {
	if !ti.Configured() {
		return "", ErrNotConfigured
	}

	grant := Grant{
		RoomJoin:             true,
		Room:                 room,
		CanPublish:           !spectator,
		CanSubscribe:         true,
		CanPublishData:       true,
		CanUpdateOwnMetadata: true,
	}

	metadata, err := json.Marshal(struct {
		Username    string `json:"username"`
		UserID      string `json:"userId"`
		IsSpectator bool   `json:"isSpectator"`
	}{username, userID, spectator})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token metadata: %w", err)
	}

	now := ti.now()
	claims := jwt.MapClaims{
		"iss":      ti.apiKey,
		"sub":      userID,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(ti.ttl).Unix(),
		"video":    grant,
		"metadata": string(metadata),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ti.apiSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign media token: %w", err)
	}
	return token, nil
}
