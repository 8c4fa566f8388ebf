package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"tubetweet-server/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	models := []any{
		&entities.User{},
		&entities.Video{},
		&entities.Tweet{},
		&entities.Comment{},
		&entities.Like{},
		&entities.Playlist{},
		&entities.PlaylistVideo{},
		&entities.Subscription{},
	}
	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return err
	}
	log.Info().Msg("applied tubetweet schema migrations")
	return nil
}
