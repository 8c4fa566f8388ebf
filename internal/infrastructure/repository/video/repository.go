package video

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "tubetweet-server/internal/domain/video"
	"tubetweet-server/internal/infrastructure/database/entities"
	"tubetweet-server/internal/utils/platformerrors"
)

// Repository handles video persistence and the engagement aggregations
// (like counts, viewer flags) attached to video reads.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, v *domain.Video) error {
	entity := entities.Video{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		VideoKey:     v.VideoKey,
		ThumbnailURL: v.ThumbnailURL,
		ThumbnailKey: v.ThumbnailKey,
		Duration:     v.Duration,
		IsPublished:  v.IsPublished,
		OwnerID:      v.OwnerID,
	}
	err := r.db.WithContext(ctx).Create(&entity).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create video",
			err,
			"5833b29a-eac5-44fb-82a3-d93c5f4a0ce4",
		)
	}
	v.CreatedAt = entity.CreatedAt
	v.UpdatedAt = entity.UpdatedAt
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id, viewerID string) (*domain.Video, error) {
	var entity entities.Video
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"video not found", err, "8b096264-94e4-40ab-bcac-5074371d0c1c")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to get video by id", err, "03ddfe04-06e6-4ae3-996a-5565abc647be")
	}

	videos, err := Hydrate(ctx, r.db, []entities.Video{entity}, viewerID)
	if err != nil {
		return nil, err
	}
	return &videos[0], nil
}

// IncrementViews bumps the view counter by exactly one, atomically.
func (r *Repository) IncrementViews(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Model(&entities.Video{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to increment views", res.Error, "152d8740-1549-4340-ad6a-eb8fae121b2f")
	}
	if res.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"video not found", nil, "b0e51159-8ae1-4fbb-ac9e-82848d3ba5c8")
	}
	return nil
}

func (r *Repository) ListPublished(ctx context.Context, viewerID string) ([]domain.Video, error) {
	var rows []entities.Video
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list published videos", err, "7a421c44-a1f5-4c27-957c-52e2b949d284")
	}
	return Hydrate(ctx, r.db, rows, viewerID)
}

// Search matches the query as a case-insensitive substring of title or
// description, published videos only, newest first.
func (r *Repository) Search(ctx context.Context, query, viewerID string) ([]domain.Video, error) {
	pattern := "%" + query + "%"
	var rows []entities.Video
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to search videos", err, "7681ec62-cf16-4e13-8840-dba11ae3ec66")
	}
	return Hydrate(ctx, r.db, rows, viewerID)
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID string, includeUnpublished bool) ([]domain.Video, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if !includeUnpublished {
		query = query.Where("is_published = ?", true)
	}

	var rows []entities.Video
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list owner videos", err, "d58875a6-1859-4e63-9b1e-1cee7e935fcf")
	}
	return Hydrate(ctx, r.db, rows, ownerID)
}

func (r *Repository) Update(ctx context.Context, v *domain.Video) error {
	updates := map[string]any{
		"title":        v.Title,
		"description":  v.Description,
		"is_published": v.IsPublished,
	}
	err := r.db.WithContext(ctx).Model(&entities.Video{}).Where("id = ?", v.ID).Updates(updates).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update video", err, "09da3271-de2d-4236-9a35-8e1dcb534aff")
	}
	return nil
}

// Delete removes the video row together with its dependent likes, comments and
// playlist memberships. The steps run sequentially without a transaction; a
// failure part way through leaves dangling rows for a later sweep.
func (r *Repository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)

	steps := []struct {
		desc string
		run  func() error
	}{
		{"playlist entries", func() error {
			return db.Where("video_id = ?", id).Delete(&entities.PlaylistVideo{}).Error
		}},
		{"comment likes", func() error {
			sub := db.Model(&entities.Comment{}).Select("id").Where("video_id = ?", id)
			return db.Where("target_kind = ? AND target_id IN (?)", "comment", sub).Delete(&entities.Like{}).Error
		}},
		{"video likes", func() error {
			return db.Where("target_kind = ? AND target_id = ?", "video", id).Delete(&entities.Like{}).Error
		}},
		{"comments", func() error {
			return db.Where("video_id = ?", id).Delete(&entities.Comment{}).Error
		}},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
				"failed to delete video "+step.desc, err, "d8435db1-e751-4d46-8f34-e97e371c26ea")
		}
	}

	res := db.Where("id = ?", id).Delete(&entities.Video{})
	if res.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete video", res.Error, "40d5e89b-372a-4256-a592-c3bb3bae42f3")
	}
	if res.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"video not found", nil, "162fcf1a-a4ba-4846-8b9b-483eb46edea8")
	}
	return nil
}

func (r *Repository) OwnerSummary(ctx context.Context, videoID string) (*domain.Owner, error) {
	var owner domain.Owner
	err := r.db.WithContext(ctx).
		Table("videos").
		Select("users.id, users.username, users.full_name, users.avatar_url").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("videos.id = ?", videoID).
		Scan(&owner).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to resolve video owner", err, "0f9f25d6-fa93-4f60-b49c-8a4182212c2d")
	}
	if owner.ID == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"video not found", nil, "19949b9d-e340-4d92-8280-8d5f44807174")
	}
	return &owner, nil
}

// Exists reports whether a video id resolves. Satisfies the comment and
// playlist domains' video checkers.
func (r *Repository) Exists(ctx context.Context, videoID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Video{}).Where("id = ?", videoID).Count(&count).Error
	if err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to check video existence", err, "ba2013e0-80db-41f8-94c8-7778dd99c5d1")
	}
	return count > 0, nil
}

// Hydrate maps video rows to domain videos with like counts and the viewer's
// liked flag attached. It runs two batched queries regardless of row count.
func Hydrate(ctx context.Context, db *gorm.DB, rows []entities.Video, viewerID string) ([]domain.Video, error) {
	videos := make([]domain.Video, 0, len(rows))
	if len(rows) == 0 {
		return videos, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	type countRow struct {
		TargetID string
		Cnt      int64
	}
	var counts []countRow
	err := db.WithContext(ctx).Model(&entities.Like{}).
		Select("target_id, COUNT(*) AS cnt").
		Where("target_kind = ? AND target_id IN ?", "video", ids).
		Group("target_id").
		Scan(&counts).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count video likes", err, "c40fbd0c-1f96-4b98-85d5-b70a9e8d8e07")
	}
	countByID := make(map[string]int64, len(counts))
	for _, c := range counts {
		countByID[c.TargetID] = c.Cnt
	}

	likedByViewer := make(map[string]bool)
	if viewerID != "" {
		var likedIDs []string
		err := db.WithContext(ctx).Model(&entities.Like{}).
			Select("target_id").
			Where("user_id = ? AND target_kind = ? AND target_id IN ?", viewerID, "video", ids).
			Scan(&likedIDs).Error
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
				"failed to resolve viewer likes", err, "eaed8781-d17c-428e-8aa9-e852b821b0ff")
		}
		for _, id := range likedIDs {
			likedByViewer[id] = true
		}
	}

	for _, row := range rows {
		v := mapEntity(row)
		v.LikeCount = countByID[row.ID]
		v.IsLiked = likedByViewer[row.ID]
		videos = append(videos, v)
	}
	return videos, nil
}

func mapEntity(entity entities.Video) domain.Video {
	return domain.Video{
		ID:           entity.ID,
		Title:        entity.Title,
		Description:  entity.Description,
		VideoURL:     entity.VideoURL,
		VideoKey:     entity.VideoKey,
		ThumbnailURL: entity.ThumbnailURL,
		ThumbnailKey: entity.ThumbnailKey,
		Duration:     entity.Duration,
		Views:        entity.Views,
		IsPublished:  entity.IsPublished,
		OwnerID:      entity.OwnerID,
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}
}
