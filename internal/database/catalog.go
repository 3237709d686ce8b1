// internal/database/catalog.go
package database

import (
	"context"

	"github.com/pasapalabra/pasapalabra-live/internal/models"
)

func ListSkins(ctx context.Context) ([]models.Skin, error) {
	q := `
	SELECT id, name, description, image_url, type, rarity, is_premium_only, cost_coins
	FROM skins
	ORDER BY name
	`
	rows, err := DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skins []models.Skin
	for rows.Next() {
		var s models.Skin
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.ImageURL,
			&s.Type, &s.Rarity, &s.IsPremiumOnly, &s.CostCoins); err != nil {
			return nil, err
		}
		skins = append(skins, s)
	}
	return skins, rows.Err()
}

func ListCameraFilters(ctx context.Context) ([]models.CameraFilter, error) {
	q := `
	SELECT id, name, description, thumbnail_url, filter_identifier, is_premium_only
	FROM camera_filters
	ORDER BY name
	`
	rows, err := DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var filters []models.CameraFilter
	for rows.Next() {
		var f models.CameraFilter
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.ThumbnailURL,
			&f.FilterIdentifier, &f.IsPremiumOnly); err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return filters, rows.Err()
}

func GetVIPLevel(ctx context.Context, level int) (*models.VipLevel, error) {
	var v models.VipLevel
	q := `
	SELECT level_number, name, required_xp, description, badge_icon_url
	FROM vip_levels
	WHERE level_number=$1
	`
	err := DB.QueryRow(ctx, q, level).Scan(
		&v.LevelNumber, &v.Name, &v.RequiredXP, &v.Description, &v.BadgeIconURL,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListVIPLevels returns every level ordered by required XP descending, so the
// first level a total clears is the highest one reached.
func ListVIPLevels(ctx context.Context) ([]models.VipLevel, error) {
	q := `
	SELECT level_number, name, required_xp, description, badge_icon_url
	FROM vip_levels
	ORDER BY required_xp DESC
	`
	rows, err := DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []models.VipLevel
	for rows.Next() {
		var v models.VipLevel
		if err := rows.Scan(&v.LevelNumber, &v.Name, &v.RequiredXP, &v.Description, &v.BadgeIconURL); err != nil {
			return nil, err
		}
		levels = append(levels, v)
	}
	return levels, rows.Err()
}
