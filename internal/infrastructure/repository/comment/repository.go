package comment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "tubetweet-server/internal/domain/comment"
	"tubetweet-server/internal/infrastructure/database/entities"
	"tubetweet-server/internal/utils/platformerrors"
)

// Repository handles comment persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, c *domain.Comment) error {
	entity := entities.Comment{
		ID:      c.ID,
		Content: c.Content,
		OwnerID: c.OwnerID,
		VideoID: c.VideoID,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create comment", err, "7b2c4d6e-8f0a-4b1c-9d3e-5f7a9b1c3d5e")
	}
	c.CreatedAt = entity.CreatedAt
	c.UpdatedAt = entity.UpdatedAt
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	var entity entities.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"comment not found", err, "2e4f6a8c-0b1d-4e3f-8a5c-7d9e1f3a5b7c")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to get comment by id", err, "9d1e3f5a-7b9c-4d2e-8f4a-6c8e0d2f4a6b")
	}
	c := mapEntity(entity)
	return &c, nil
}

func (r *Repository) ListByVideo(ctx context.Context, videoID string) ([]domain.Comment, error) {
	var rows []entities.Comment
	err := r.db.WithContext(ctx).Where("video_id = ?", videoID).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list video comments", err, "4a6c8e0d-2f4a-4b6c-8d0e-2f4a6b8c0d2e")
	}
	return r.hydrate(ctx, rows)
}

func (r *Repository) Update(ctx context.Context, c *domain.Comment) error {
	err := r.db.WithContext(ctx).Model(&entities.Comment{}).Where("id = ?", c.ID).
		Update("content", c.Content).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update comment", err, "6b8d0f2a-4c6e-4d8f-0a2c-4e6a8c0e2f4b")
	}
	return nil
}

// Delete removes the comment and any likes pointing at it.
func (r *Repository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("target_kind = ? AND target_id = ?", "comment", id).Delete(&entities.Like{}).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete comment likes", err, "8c0e2f4a-6b8d-4f0a-2c4e-6a8c0e2f4a6c")
	}
	res := db.Where("id = ?", id).Delete(&entities.Comment{})
	if res.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete comment", res.Error, "0d2f4a6c-8e0b-4a2c-4e6a-8c0e2f4a6c8e")
	}
	if res.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"comment not found", nil, "2f4a6c8e-0d2b-4c4e-6a8c-0e2f4a6c8e0d")
	}
	return nil
}

// Exists reports whether a comment id resolves.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Comment{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to check comment existence", err, "4a6c8e0d-2f4b-4e6a-8c0e-2f4a6c8e0d2f")
	}
	return count > 0, nil
}

// hydrate attaches owner summaries and like counts using batched queries.
func (r *Repository) hydrate(ctx context.Context, rows []entities.Comment) ([]domain.Comment, error) {
	comments := make([]domain.Comment, 0, len(rows))
	if len(rows) == 0 {
		return comments, nil
	}

	ids := make([]string, 0, len(rows))
	ownerIDs := make([]string, 0, len(rows))
	seenOwners := make(map[string]bool, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
		if !seenOwners[row.OwnerID] {
			seenOwners[row.OwnerID] = true
			ownerIDs = append(ownerIDs, row.OwnerID)
		}
	}

	var owners []struct {
		ID        string
		Username  string
		AvatarURL string
	}
	err := r.db.WithContext(ctx).Model(&entities.User{}).
		Select("id, username, avatar_url").
		Where("id IN ?", ownerIDs).
		Scan(&owners).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to load comment owners", err, "6c8e0d2f-4a6b-4c8e-0d2f-4a6c8e0d2f4a")
	}
	ownerByID := make(map[string]domain.Owner, len(owners))
	for _, o := range owners {
		ownerByID[o.ID] = domain.Owner{ID: o.ID, Username: o.Username, AvatarURL: o.AvatarURL}
	}

	type countRow struct {
		TargetID string
		Cnt      int64
	}
	var counts []countRow
	err = r.db.WithContext(ctx).Model(&entities.Like{}).
		Select("target_id, COUNT(*) AS cnt").
		Where("target_kind = ? AND target_id IN ?", "comment", ids).
		Group("target_id").
		Scan(&counts).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count comment likes", err, "8e0d2f4a-6c8b-4e0d-2f4a-6c8e0d2f4a6c")
	}
	countByID := make(map[string]int64, len(counts))
	for _, c := range counts {
		countByID[c.TargetID] = c.Cnt
	}

	for _, row := range rows {
		c := mapEntity(row)
		if o, ok := ownerByID[row.OwnerID]; ok {
			owner := o
			c.Owner = &owner
		}
		c.LikeCount = countByID[row.ID]
		comments = append(comments, c)
	}
	return comments, nil
}

func mapEntity(entity entities.Comment) domain.Comment {
	return domain.Comment{
		ID:        entity.ID,
		Content:   entity.Content,
		OwnerID:   entity.OwnerID,
		VideoID:   entity.VideoID,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}
