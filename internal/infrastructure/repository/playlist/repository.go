package playlist

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "tubetweet-server/internal/domain/playlist"
	"tubetweet-server/internal/domain/video"
	"tubetweet-server/internal/infrastructure/database/entities"
	videorepo "tubetweet-server/internal/infrastructure/repository/video"
	"tubetweet-server/internal/utils/platformerrors"
)

// Repository handles playlist persistence and membership ordering.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *domain.Playlist) error {
	entity := entities.Playlist{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to create playlist", err, "7d9e1f3a-5c7d-4b9e-8f1a-3b5c7d9e1f40")
	}
	p.CreatedAt = entity.CreatedAt
	p.UpdatedAt = entity.UpdatedAt
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Playlist, error) {
	var entity entities.Playlist
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
				"playlist not found", err, "9e1f3a5c-7d9e-4c1f-8a3b-5c7d9e1f3a60")
		}
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to get playlist by id", err, "1f3a5c7d-9e1f-4d3a-8b5c-7d9e1f3a5c80")
	}

	p := mapEntity(entity)
	if err := r.fillCounts(ctx, []*domain.Playlist{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Playlist, error) {
	var rows []entities.Playlist
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list owner playlists", err, "3a5c7d9e-1f3a-4e5c-8d7e-9f1a3b5c7da0")
	}

	playlists := make([]domain.Playlist, 0, len(rows))
	refs := make([]*domain.Playlist, 0, len(rows))
	for _, row := range rows {
		playlists = append(playlists, mapEntity(row))
	}
	for i := range playlists {
		refs = append(refs, &playlists[i])
	}
	if err := r.fillCounts(ctx, refs); err != nil {
		return nil, err
	}
	return playlists, nil
}

func (r *Repository) Update(ctx context.Context, p *domain.Playlist) error {
	updates := map[string]any{
		"name":        p.Name,
		"description": p.Description,
	}
	err := r.db.WithContext(ctx).Model(&entities.Playlist{}).Where("id = ?", p.ID).Updates(updates).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to update playlist", err, "5c7d9e1f-3a5c-4f7d-8e9f-1a3b5c7d9ec0")
	}
	return nil
}

// Delete removes the playlist and its membership rows.
func (r *Repository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("playlist_id = ?", id).Delete(&entities.PlaylistVideo{}).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete playlist entries", err, "7d9e1f3a-5c7d-4a9e-8f1a-3b5c7d9e1fe0")
	}
	res := db.Where("id = ?", id).Delete(&entities.Playlist{})
	if res.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to delete playlist", res.Error, "9e1f3a5c-7d9e-4b1f-8a3b-5c7d9e1f3a00")
	}
	if res.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"playlist not found", nil, "1f3a5c7d-9e1f-4c3a-8b5c-7d9e1f3a5c20")
	}
	return nil
}

// AppendVideo adds a membership row after the current last position. Duplicate
// memberships of the same video are allowed.
func (r *Repository) AppendVideo(ctx context.Context, playlistID, videoID string) error {
	db := r.db.WithContext(ctx)

	var maxPos int
	err := db.Model(&entities.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPos).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to resolve playlist position", err, "3a5c7d9e-1f3a-4d5c-8d7e-9f1a3b5c7d40")
	}

	entry := entities.PlaylistVideo{
		PlaylistID: playlistID,
		VideoID:    videoID,
		Position:   maxPos + 1,
	}
	if err := db.Create(&entry).Error; err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to append playlist video", err, "5c7d9e1f-3a5c-4e7d-8e9f-1a3b5c7d9e60")
	}
	return nil
}

// RemoveVideo deletes every occurrence of the video from the playlist.
func (r *Repository) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	res := r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&entities.PlaylistVideo{})
	if res.Error != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to remove playlist video", res.Error, "7d9e1f3a-5c7d-4f9e-8f1a-3b5c7d9e1f80")
	}
	if res.RowsAffected == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound,
			"video not in playlist", nil, "9e1f3a5c-7d9e-4d1f-8a3b-5c7d9e1f3aa0")
	}
	return nil
}

// ListVideos returns the playlist's videos in membership order, duplicates
// included.
func (r *Repository) ListVideos(ctx context.Context, playlistID, viewerID string) ([]video.Video, error) {
	var rows []entities.Video
	err := r.db.WithContext(ctx).
		Table("playlist_videos").
		Select("videos.*").
		Joins("JOIN videos ON videos.id = playlist_videos.video_id").
		Where("playlist_videos.playlist_id = ?", playlistID).
		Order("playlist_videos.position ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to list playlist videos", err, "1f3a5c7d-9e1f-4e3a-8b5c-7d9e1f3a5cc0")
	}
	return videorepo.Hydrate(ctx, r.db, rows, viewerID)
}

func (r *Repository) fillCounts(ctx context.Context, playlists []*domain.Playlist) error {
	if len(playlists) == 0 {
		return nil
	}
	ids := make([]string, 0, len(playlists))
	for _, p := range playlists {
		ids = append(ids, p.ID)
	}

	type countRow struct {
		PlaylistID string
		Cnt        int64
	}
	var counts []countRow
	err := r.db.WithContext(ctx).Model(&entities.PlaylistVideo{}).
		Select("playlist_id, COUNT(*) AS cnt").
		Where("playlist_id IN ?", ids).
		Group("playlist_id").
		Scan(&counts).Error
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError,
			"failed to count playlist videos", err, "3a5c7d9e-1f3a-4f5c-8d7e-9f1a3b5c7de0")
	}
	countByID := make(map[string]int64, len(counts))
	for _, c := range counts {
		countByID[c.PlaylistID] = c.Cnt
	}
	for _, p := range playlists {
		p.VideoCount = countByID[p.ID]
	}
	return nil
}

func mapEntity(entity entities.Playlist) domain.Playlist {
	return domain.Playlist{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		OwnerID:     entity.OwnerID,
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}
}
