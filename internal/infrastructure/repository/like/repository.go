package like

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "tubetweet-server/internal/domain/like"
	"tubetweet-server/internal/domain/video"
	"tubetweet-server/internal/infrastructure/database/entities"
	videorepo "tubetweet-server/internal/infrastructure/repository/video"
	"tubetweet-server/internal/utils/platformerrors"
)

// Repository handles like persistence across the three target kinds.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Find returns the like for (user, target) or nil when none exists.
func (r *Repository) Find(ctx context.Context, userID string, target domain.Target) (*domain.Like, error) {
	var entity entities.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_kind = ? AND target_id = ?", userID, string(target.Kind), target.ID).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to find like", err, "1a3b5c7d-9e1f-4a3b-8c5d-7e9f1a3b5c7d")
	}
	l := mapEntity(entity)
	return &l, nil
}

func (r *Repository) Create(ctx context.Context, l *domain.Like) error {
	entity := entities.Like{
		ID:         l.ID,
		UserID:     l.UserID,
		TargetKind: string(l.Target.Kind),
		TargetID:   l.Target.ID,
	}
	err := r.db.WithContext(ctx).Create(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
				"target already liked", err, "3b5c7d9e-1f3a-4b5c-8d7e-9f1a3b5c7d9e")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create like", err, "5c7d9e1f-3a5b-4c7d-8e9f-1a3b5c7d9e1f")
	}
	l.CreatedAt = entity.CreatedAt
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Like{})
	if res.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete like", res.Error, "7d9e1f3a-5c7b-4d9e-8f1a-3b5c7d9e1f3a")
	}
	if res.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"like not found", nil, "9e1f3a5c-7d9b-4e1f-8a3b-5c7d9e1f3a5c")
	}
	return nil
}

func (r *Repository) CountForTarget(ctx context.Context, target domain.Target) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Like{}).
		Where("target_kind = ? AND target_id = ?", string(target.Kind), target.ID).
		Count(&count).Error
	if err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count likes", err, "1f3a5c7d-9e1b-4f3a-8b5c-7d9e1f3a5c7d")
	}
	return count, nil
}

// ListLikedVideos returns the published videos the user has liked, most
// recently liked first.
func (r *Repository) ListLikedVideos(ctx context.Context, userID string) ([]video.Video, error) {
	var rows []entities.Video
	err := r.db.WithContext(ctx).
		Table("videos").
		Select("videos.*").
		Joins("JOIN likes ON likes.target_id = videos.id AND likes.target_kind = ?", "video").
		Where("likes.user_id = ? AND videos.is_published = ?", userID, true).
		Order("likes.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list liked videos", err, "3a5c7d9e-1f3b-4a5c-8d7e-9f1a3b5c7d9f")
	}
	return videorepo.Hydrate(ctx, r.db, rows, userID)
}

func mapEntity(entity entities.Like) domain.Like {
	return domain.Like{
		ID:     entity.ID,
		UserID: entity.UserID,
		Target: domain.Target{
			Kind: domain.TargetKind(entity.TargetKind),
			ID:   entity.TargetID,
		},
		CreatedAt: entity.CreatedAt,
	}
}
