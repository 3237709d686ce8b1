// internal/database/progress.go
package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pasapalabra/pasapalabra-live/internal/models"
)

// GetUserSkins returns the catalog skins a user has unlocked.
func GetUserSkins(ctx context.Context, userID uuid.UUID) ([]models.UserSkin, error) {
	q := `
	SELECT s.id, s.name, s.description, s.image_url, s.type, s.rarity,
	       s.is_premium_only, s.cost_coins,
	       uus.unlocked_at, uus.is_equipped
	FROM user_unlocked_skins uus
	JOIN skins s ON uus.skin_id = s.id
	WHERE uus.user_id = $1
	`
	rows, err := DB.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skins []models.UserSkin
	for rows.Next() {
		var us models.UserSkin
		if err := rows.Scan(&us.ID, &us.Name, &us.Description, &us.ImageURL,
			&us.Type, &us.Rarity, &us.IsPremiumOnly, &us.CostCoins,
			&us.UnlockedAt, &us.IsEquipped); err != nil {
			return nil, err
		}
		skins = append(skins, us)
	}
	return skins, rows.Err()
}

// GetUserCameraFilters returns the catalog camera filters a user has unlocked.
func GetUserCameraFilters(ctx context.Context, userID uuid.UUID) ([]models.UserCameraFilter, error) {
	q := `
	SELECT cf.id, cf.name, cf.description, cf.thumbnail_url,
	       cf.filter_identifier, cf.is_premium_only,
	       uucf.unlocked_at
	FROM user_unlocked_camera_filters uucf
	JOIN camera_filters cf ON uucf.camera_filter_id = cf.id
	WHERE uucf.user_id = $1
	`
	rows, err := DB.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var filters []models.UserCameraFilter
	for rows.Next() {
		var uf models.UserCameraFilter
		if err := rows.Scan(&uf.ID, &uf.Name, &uf.Description, &uf.ThumbnailURL,
			&uf.FilterIdentifier, &uf.IsPremiumOnly, &uf.UnlockedAt); err != nil {
			return nil, err
		}
		filters = append(filters, uf)
	}
	return filters, rows.Err()
}

// AddUserXP credits xpGained to the user, recomputes the VIP level against
// the vip_levels table, and persists both. It returns the updated user, a
// flag for whether a new level was reached, and the level's details.
func AddUserXP(ctx context.Context, userID uuid.UUID, xpGained int) (*models.User, bool, *models.VipLevel, error) {
	if xpGained <= 0 {
		return nil, false, nil, fmt.Errorf("xp gained must be positive")
	}

	user, err := GetUserByID(ctx, userID)
	if err != nil {
		return nil, false, nil, fmt.Errorf("user not found: %w", err)
	}

	levels, err := ListVIPLevels(ctx)
	if err != nil {
		return nil, false, nil, fmt.Errorf("failed to load vip levels: %w", err)
	}

	newXP := user.XP + xpGained
	newLevel := user.VIPLevel
	var levelDetails *models.VipLevel
	for i := range levels {
		if newXP >= levels[i].RequiredXP {
			newLevel = levels[i].LevelNumber
			levelDetails = &levels[i]
			break
		}
	}

	err = pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx,
			`UPDATE users SET xp=$1, current_vip_level_number=$2 WHERE id=$3`,
			newXP, newLevel, userID,
		)
		return execErr
	})
	if err != nil {
		return nil, false, nil, fmt.Errorf("failed to update progress: %w", err)
	}

	reached := newLevel != user.VIPLevel
	user.XP = newXP
	user.VIPLevel = newLevel
	user.Password = ""
	return user, reached, levelDetails, nil
}
