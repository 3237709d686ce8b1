// internal/database/user.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pasapalabra/pasapalabra-live/internal/auth"
	"github.com/pasapalabra/pasapalabra-live/internal/models"
)

// CreateUser hashes the plaintext password and inserts the user row. The
// generated id and the hash are written back into the struct.
func CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return fmt.Errorf("failed to generate user id: %w", err)
		}
		user.ID = id
	}
	if user.Role == "" {
		user.Role = "player"
	}
	user.IsActive = true

	hash, err := auth.CreateHash(user.Password, auth.Params)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash

	q := `INSERT INTO users (id, username, email, password_hash, role, is_active)
	      VALUES ($1, $2, $3, $4, $5, $6)`

	err = pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q,
			user.ID, user.Username, user.Email, user.Password, user.Role, user.IsActive,
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	q := `
	SELECT id, username, email, password_hash, role, is_active,
	       total_games, total_wins, total_points,
	       xp, current_vip_level_number
	FROM users
	WHERE email=$1
	`
	err := DB.QueryRow(ctx, q, email).Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.IsActive,
		&u.TotalGames, &u.TotalWins, &u.TotalPoints,
		&u.XP, &u.VIPLevel,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	q := `
	SELECT id, username, email, password_hash, role, is_active,
	       total_games, total_wins, total_points,
	       xp, current_vip_level_number
	FROM users
	WHERE id=$1
	`
	err := DB.QueryRow(ctx, q, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.Password, &u.Role, &u.IsActive,
		&u.TotalGames, &u.TotalWins, &u.TotalPoints,
		&u.XP, &u.VIPLevel,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AuthenticateUser checks credentials against an active account, stamps the
// last login, and returns a session token alongside the user.
func AuthenticateUser(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("user not found or db error: %w", err)
	}
	if !user.IsActive {
		return "", nil, fmt.Errorf("account disabled")
	}

	match, err := auth.ComparePasswordAndHash(password, user.Password)
	if err != nil || !match {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if _, err := DB.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id=$1`, user.ID); err != nil {
		return "", nil, fmt.Errorf("failed to update last login: %w", err)
	}

	token, err := auth.CreateJWT(user.ID.String())
	if err != nil {
		return "", nil, fmt.Errorf("failed to create jwt: %w", err)
	}

	user.Password = ""
	return token, user, nil
}
