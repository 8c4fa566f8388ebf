package dashboard

import (
	"context"

	"gorm.io/gorm"

	domain "tubetweet-server/internal/domain/dashboard"
	"tubetweet-server/internal/infrastructure/database/entities"
	"tubetweet-server/internal/utils/platformerrors"
)

// Repository computes channel-wide aggregates.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// StatsForChannel aggregates video count, total views, subscriber count and
// total likes received across the channel's videos.
func (r *Repository) StatsForChannel(ctx context.Context, channelID string) (*domain.Stats, error) {
	db := r.db.WithContext(ctx)
	stats := &domain.Stats{}

	type videoAgg struct {
		Cnt   int64
		Views int64
	}
	var va videoAgg
	err := db.Model(&entities.Video{}).
		Select("COUNT(*) AS cnt, COALESCE(SUM(views), 0) AS views").
		Where("owner_id = ?", channelID).
		Scan(&va).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to aggregate channel videos", err, "3a5c7d9e-1f3d-4b5c-8d7e-9f1a3b5c7d21")
	}
	stats.TotalVideos = va.Cnt
	stats.TotalViews = va.Views

	err = db.Model(&entities.Subscription{}).
		Where("channel_id = ?", channelID).
		Count(&stats.TotalSubscribers).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count channel subscribers", err, "5c7d9e1f-3a60-4c7d-8e9f-1a3b5c7d9f41")
	}

	sub := db.Model(&entities.Video{}).Select("id").Where("owner_id = ?", channelID)
	err = db.Model(&entities.Like{}).
		Where("target_kind = ? AND target_id IN (?)", "video", sub).
		Count(&stats.TotalLikes).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count channel likes", err, "7d9e1f3a-5c81-4d9e-8f1a-3b5c7d9e1f61")
	}

	return stats, nil
}
