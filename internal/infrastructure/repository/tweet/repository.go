package tweet

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "tubetweet-server/internal/domain/tweet"
	"tubetweet-server/internal/infrastructure/database/entities"
	"tubetweet-server/internal/utils/platformerrors"
)

// Repository handles tweet persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, t *domain.Tweet) error {
	entity := entities.Tweet{
		ID:      t.ID,
		Content: t.Content,
		OwnerID: t.OwnerID,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create tweet", err, "4f1a9e8c-6f52-4c87-8c12-3af6c0c2f3da")
	}
	t.CreatedAt = entity.CreatedAt
	t.UpdatedAt = entity.UpdatedAt
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Tweet, error) {
	var entity entities.Tweet
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"tweet not found", err, "9c0df719-57f5-46f2-8f2c-7a6c6f5f3e1b")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to get tweet by id", err, "f2b6d4ab-1e05-4b66-9ba2-cc4f5b4e6a3d")
	}
	t := mapEntity(entity)
	return &t, nil
}

func (r *Repository) ListAll(ctx context.Context, viewerID string) ([]domain.Tweet, error) {
	var rows []entities.Tweet
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list tweets", err, "0a6b1f2e-40cb-4b8e-a0a4-8bb2a8a0f5e9")
	}
	return r.hydrate(ctx, rows, viewerID)
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID, viewerID string) ([]domain.Tweet, error) {
	var rows []entities.Tweet
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list owner tweets", err, "5dcbbf36-5d7a-4b95-bfb4-25c96d95a8c3")
	}
	return r.hydrate(ctx, rows, viewerID)
}

func (r *Repository) Update(ctx context.Context, t *domain.Tweet) error {
	err := r.db.WithContext(ctx).Model(&entities.Tweet{}).Where("id = ?", t.ID).
		Update("content", t.Content).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update tweet", err, "2b8e3f61-95a9-43c1-80d7-6c91e4f7a2cd")
	}
	return nil
}

// Delete removes the tweet and any likes pointing at it.
func (r *Repository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("target_kind = ? AND target_id = ?", "tweet", id).Delete(&entities.Like{}).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete tweet likes", err, "6e4f2d0a-0d13-4d5b-9cf6-8e2fb72d91ab")
	}
	res := db.Where("id = ?", id).Delete(&entities.Tweet{})
	if res.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete tweet", res.Error, "a01f7b25-9a3e-47a0-8f11-3d38c9f60b84")
	}
	if res.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"tweet not found", nil, "cc9a61e8-2e33-4d2f-b06e-72f4e8e3ab50")
	}
	return nil
}

// Exists reports whether a tweet id resolves.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Tweet{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to check tweet existence", err, "1dfd4c8e-7a65-4b9a-9b6a-cb0f2e5b4d17")
	}
	return count > 0, nil
}

// hydrate attaches owner summaries, like counts and the viewer's liked flag
// using batched queries.
func (r *Repository) hydrate(ctx context.Context, rows []entities.Tweet, viewerID string) ([]domain.Tweet, error) {
	tweets := make([]domain.Tweet, 0, len(rows))
	if len(rows) == 0 {
		return tweets, nil
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
			"failed to load tweet owners", err, "8a15e3a9-df4e-4c8e-9d70-2f1e6a4c0db2")
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
		Where("target_kind = ? AND target_id IN ?", "tweet", ids).
		Group("target_id").
		Scan(&counts).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count tweet likes", err, "3c7d5e1a-4b6f-45a2-8f9d-0e2c1b7a6d43")
	}
	countByID := make(map[string]int64, len(counts))
	for _, c := range counts {
		countByID[c.TargetID] = c.Cnt
	}

	likedByViewer := make(map[string]bool)
	if viewerID != "" {
		var likedIDs []string
		err = r.db.WithContext(ctx).Model(&entities.Like{}).
			Select("target_id").
			Where("user_id = ? AND target_kind = ? AND target_id IN ?", viewerID, "tweet", ids).
			Scan(&likedIDs).Error
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
				"failed to resolve viewer tweet likes", err, "e9f0a2b1-6d8c-4f3e-b5a7-1c2d3e4f5a6b")
		}
		for _, id := range likedIDs {
			likedByViewer[id] = true
		}
	}

	for _, row := range rows {
		t := mapEntity(row)
		if o, ok := ownerByID[row.OwnerID]; ok {
			owner := o
			t.Owner = &owner
		}
		t.LikeCount = countByID[row.ID]
		t.IsLiked = likedByViewer[row.ID]
		tweets = append(tweets, t)
	}
	return tweets, nil
}

func mapEntity(entity entities.Tweet) domain.Tweet {
	return domain.Tweet{
		ID:        entity.ID,
		Content:   entity.Content,
		OwnerID:   entity.OwnerID,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}
