package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"password,omitempty"`

	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`

	TotalGames  int `json:"total_games"`
	TotalWins   int `json:"total_wins"`
	TotalPoints int `json:"total_points"`

	XP       int `json:"xp"`
	VIPLevel int `json:"current_vip_level_number"`

	LastLogin *time.Time `json:"last_login,omitempty"`
}
