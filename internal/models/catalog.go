package models

import (
	"time"

	"github.com/google/uuid"
)

type Skin struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	Type          string    `json:"type"`
	Rarity        string    `json:"rarity"`
	IsPremiumOnly bool      `json:"is_premium_only"`
	CostCoins     int       `json:"cost_coins"`
}

// UserSkin is a catalog skin joined with one user's unlock row.
type UserSkin struct {
	Skin
	UnlockedAt time.Time `json:"unlocked_at"`
	IsEquipped bool      `json:"is_equipped"`
}

type CameraFilter struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	ThumbnailURL     string    `json:"thumbnail_url"`
	FilterIdentifier string    `json:"filter_identifier"`
	IsPremiumOnly    bool      `json:"is_premium_only"`
}

// UserCameraFilter is a catalog filter joined with one user's unlock row.
type UserCameraFilter struct {
	CameraFilter
	UnlockedAt time.Time `json:"unlocked_at"`
}

type VipLevel struct {
	LevelNumber  int    `json:"level_number"`
	Name         string `json:"name"`
	RequiredXP   int    `json:"required_xp"`
	Description  string `json:"description"`
	BadgeIconURL string `json:"badge_icon_url"`
}
