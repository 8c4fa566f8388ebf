// Package playlist provides user-curated video collections.
package playlist

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tubetweet-server/internal/domain/video"
	"tubetweet-server/internal/utils/idgen"
	"tubetweet-server/internal/utils/platformerrors"
)

// Playlist is a named ordered collection of videos.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner"`
	VideoCount  int64     `json:"videoCount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Params carries the mutable playlist fields.
type Params struct {
	Name        string
	Description string
}

// Repository defines persistence operations needed by the service.
type Repository interface {
	Create(ctx context.Context, p *Playlist) error
	GetByID(ctx context.Context, id string) (*Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Playlist, error)
	Update(ctx context.Context, p *Playlist) error
	Delete(ctx context.Context, id string) error
	// AppendVideo adds a membership row at the end of the playlist. Repeated
	// appends of the same video produce duplicate entries; the API does not
	// deduplicate.
	AppendVideo(ctx context.Context, playlistID, videoID string) error
	// RemoveVideo deletes every occurrence of the video from the playlist.
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
	ListVideos(ctx context.Context, playlistID, viewerID string) ([]video.Video, error)
}

// VideoChecker verifies a video exists before it is appended.
type VideoChecker interface {
	Exists(ctx context.Context, videoID string) (bool, error)
}

// Service orchestrates playlist CRUD and membership with owner authorization.
type Service struct {
	repo   Repository
	videos VideoChecker
	log    zerolog.Logger
}

func NewService(repo Repository, videos VideoChecker, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		videos: videos,
		log:    log.With().Str("component", "playlist-service").Logger(),
	}
}

// Create makes a new empty playlist.
func (s *Service) Create(ctx context.Context, ownerID string, params Params) (*Playlist, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"playlist name is required", nil, "f621ccc8-6c19-4e70-beee-dc54c5ce8ae6")
	}

	p := &Playlist{
		ID:          idgen.New(idgen.PrefixPlaylist),
		Name:        name,
		Description: strings.TrimSpace(params.Description),
		OwnerID:     ownerID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a playlist by id.
func (s *Service) Get(ctx context.Context, id string) (*Playlist, error) {
	return s.repo.GetByID(ctx, id)
}

// ListByUser returns a user's playlists.
func (s *Service) ListByUser(ctx context.Context, ownerID string) ([]Playlist, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update mutates name/description. Only the owner may update.
func (s *Service) Update(ctx context.Context, id, requesterID string, params Params) (*Playlist, error) {
	p, err := s.authorizeOwner(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(params.Name); name != "" {
		p.Name = name
	}
	if desc := strings.TrimSpace(params.Description); desc != "" {
		p.Description = desc
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a playlist and its membership rows. Only the owner may delete.
func (s *Service) Delete(ctx context.Context, id, requesterID string) error {
	if _, err := s.authorizeOwner(ctx, id, requesterID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AddVideo appends a video to the playlist. Only the owner may add. Duplicate
// entries are permitted.
func (s *Service) AddVideo(ctx context.Context, playlistID, videoID, requesterID string) (*Playlist, error) {
	p, err := s.authorizeOwner(ctx, playlistID, requesterID)
	if err != nil {
		return nil, err
	}

	exists, err := s.videos.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"video not found", nil, "15299be7-bc07-4b30-818f-46ca4c33d0dc")
	}

	if err := s.repo.AppendVideo(ctx, playlistID, videoID); err != nil {
		return nil, err
	}
	p.VideoCount++
	return p, nil
}

// RemoveVideo removes every occurrence of a video from the playlist. Only the
// owner may remove.
func (s *Service) RemoveVideo(ctx context.Context, playlistID, videoID, requesterID string) error {
	if _, err := s.authorizeOwner(ctx, playlistID, requesterID); err != nil {
		return err
	}
	return s.repo.RemoveVideo(ctx, playlistID, videoID)
}

// Videos lists the playlist's videos in membership order.
func (s *Service) Videos(ctx context.Context, playlistID, viewerID string) ([]video.Video, error) {
	if _, err := s.repo.GetByID(ctx, playlistID); err != nil {
		return nil, err
	}
	return s.repo.ListVideos(ctx, playlistID, viewerID)
}

func (s *Service) authorizeOwner(ctx context.Context, id, requesterID string) (*Playlist, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != requesterID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden,
			"only the owner may modify this playlist", nil, "e36f9d28-22b3-4c47-9c07-bcd3788fdfba")
	}
	return p, nil
}
