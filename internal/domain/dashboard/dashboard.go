// Package dashboard aggregates channel statistics for the owner's view.
package dashboard

import (
	"context"

	"github.com/rs/zerolog"

	"tubetweet-server/internal/domain/video"
)

// Stats summarizes a channel's footprint.
type Stats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
}

// Repository computes the aggregate channel figures.
type Repository interface {
	StatsForChannel(ctx context.Context, channelID string) (*Stats, error)
}

// VideoLister exposes the owner's videos including unpublished ones.
type VideoLister interface {
	ListByOwner(ctx context.Context, ownerID string, includeUnpublished bool) ([]video.Video, error)
}

// Service provides the channel owner's dashboard.
type Service struct {
	repo   Repository
	videos VideoLister
	log    zerolog.Logger
}

func NewService(repo Repository, videos VideoLister, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		videos: videos,
		log:    log.With().Str("component", "dashboard-service").Logger(),
	}
}

// Stats returns the channel totals for the authenticated owner.
func (s *Service) Stats(ctx context.Context, channelID string) (*Stats, error) {
	return s.repo.StatsForChannel(ctx, channelID)
}

// Videos returns the owner's videos, unpublished included.
func (s *Service) Videos(ctx context.Context, ownerID string) ([]video.Video, error) {
	return s.videos.ListByOwner(ctx, ownerID, true)
}
